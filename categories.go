package gofirds

// Controlled vocabularies used as building blocks in the reference-data
// records. Each vocabulary is a typed four-letter code; the tables map codes
// to human-readable descriptions and double as the strict lookup sets used by
// the enumerated-code decoder.

// IndexTermUnit is the unit of time in which an index term is expressed.
type IndexTermUnit string

const (
	TermDays  IndexTermUnit = "DAYS"
	TermWeek  IndexTermUnit = "WEEK"
	TermMonth IndexTermUnit = "MNTH"
	TermYear  IndexTermUnit = "YEAR"
)

var indexTermUnits = map[IndexTermUnit]string{
	TermDays:  "days",
	TermWeek:  "week",
	TermMonth: "month",
	TermYear:  "year",
}

// Description returns the human-readable meaning of the code, or "" when the
// code is outside the vocabulary.
func (u IndexTermUnit) Description() string { return indexTermUnits[u] }

// IndexName is a controlled benchmark name. Benchmark names outside this
// vocabulary are legal in the data and are carried as free text instead.
type IndexName string

const (
	IndexEONIA       IndexName = "EONA"
	IndexEONIASwap   IndexName = "EONS"
	IndexEURIBOR     IndexName = "EURO"
	IndexEuroSwiss   IndexName = "EUCH"
	IndexGCFRepo     IndexName = "GCFR"
	IndexISDAFIX     IndexName = "ISDA"
	IndexLIBID       IndexName = "LIBI"
	IndexLIBOR       IndexName = "LIBO"
	IndexMuniAAA     IndexName = "MAAA"
	IndexPfandbriefe IndexName = "PFAN"
	IndexTIBOR       IndexName = "TIBO"
	IndexSTIBOR      IndexName = "STBO"
	IndexBBSW        IndexName = "BBSW"
	IndexJIBAR       IndexName = "JIBA"
	IndexBUBOR       IndexName = "BUBO"
	IndexCDOR        IndexName = "CDOR"
	IndexCIBOR       IndexName = "CIBO"
	IndexMOSPRIM     IndexName = "MOSP"
	IndexNIBOR       IndexName = "NIBO"
	IndexPRIBOR      IndexName = "PRBO"
	IndexTELBOR      IndexName = "TLBO"
	IndexWIBOR       IndexName = "WIBO"
	IndexTreasury    IndexName = "TREA"
	IndexSwap        IndexName = "SWAP"
	IndexFutureSwap  IndexName = "FUSW"
)

var indexNames = map[IndexName]string{
	IndexEONIA:       "EONIA",
	IndexEONIASwap:   "EONIA SWAP",
	IndexEURIBOR:     "EURIBOR",
	IndexEuroSwiss:   "EuroSwiss",
	IndexGCFRepo:     "GCF REPO",
	IndexISDAFIX:     "ISDAFIX",
	IndexLIBID:       "LIBID",
	IndexLIBOR:       "LIBOR",
	IndexMuniAAA:     "Muni AAA",
	IndexPfandbriefe: "Pfandbriefe",
	IndexTIBOR:       "TIBOR",
	IndexSTIBOR:      "STIBOR",
	IndexBBSW:        "BBSW",
	IndexJIBAR:       "JIBAR",
	IndexBUBOR:       "BUBOR",
	IndexCDOR:        "CDOR",
	IndexCIBOR:       "CIBOR",
	IndexMOSPRIM:     "MOSPRIM",
	IndexNIBOR:       "NIBOR",
	IndexPRIBOR:      "PRIBOR",
	IndexTELBOR:      "TELBOR",
	IndexWIBOR:       "WIBOR",
	IndexTreasury:    "Treasury",
	IndexSwap:        "SWAP",
	IndexFutureSwap:  "Future SWAP",
}

func (n IndexName) Description() string { return indexNames[n] }

// DebtSeniority classifies securitised debt by seniority.
type DebtSeniority string

const (
	SenioritySenior       DebtSeniority = "SNDB"
	SeniorityMezzanine    DebtSeniority = "MZZD"
	SenioritySubordinated DebtSeniority = "SBOD"
	SeniorityJunior       DebtSeniority = "JUND"
)

var debtSeniorities = map[DebtSeniority]string{
	SenioritySenior:       "senior",
	SeniorityMezzanine:    "mezzanine",
	SenioritySubordinated: "subordinated",
	SeniorityJunior:       "junior",
}

func (s DebtSeniority) Description() string { return debtSeniorities[s] }

// OptionType states whether an option is a call or a put, or that this cannot
// be determined at execution time.
type OptionType string

const (
	OptionPut   OptionType = "PUTO"
	OptionCall  OptionType = "CALL"
	OptionOther OptionType = "OTHR"
)

var optionTypes = map[OptionType]string{
	OptionPut:   "put",
	OptionCall:  "call",
	OptionOther: "other",
}

func (o OptionType) Description() string { return optionTypes[o] }

// OptionExerciseStyle states when an option may be exercised.
type OptionExerciseStyle string

const (
	ExerciseEuropean OptionExerciseStyle = "EURO"
	ExerciseAmerican OptionExerciseStyle = "AMER"
	ExerciseAsian    OptionExerciseStyle = "ASIA"
	ExerciseBermudan OptionExerciseStyle = "BERM"
	ExerciseOther    OptionExerciseStyle = "OTHR"
)

var optionExerciseStyles = map[OptionExerciseStyle]string{
	ExerciseEuropean: "European",
	ExerciseAmerican: "American",
	ExerciseAsian:    "Asian",
	ExerciseBermudan: "Bermudan",
	ExerciseOther:    "Other",
}

func (s OptionExerciseStyle) Description() string { return optionExerciseStyles[s] }

// DeliveryType states whether an instrument is settled physically or in cash.
type DeliveryType string

const (
	DeliveryPhysical DeliveryType = "PHYS"
	DeliveryCash     DeliveryType = "CASH"
	DeliveryOptional DeliveryType = "OPTL"
)

var deliveryTypes = map[DeliveryType]string{
	DeliveryPhysical: "physical",
	DeliveryCash:     "cash",
	DeliveryOptional: "optional",
}

func (d DeliveryType) Description() string { return deliveryTypes[d] }

// BaseProduct is the top level of the commodity derivative product
// classification (RTS 23 Annex, Table 2).
type BaseProduct string

const (
	ProductAgricultural  BaseProduct = "AGRI"
	ProductEnergy        BaseProduct = "NRGY"
	ProductEnvironmental BaseProduct = "ENVR"
	ProductFreight       BaseProduct = "FRGT"
	ProductFertilizer    BaseProduct = "FRTL"
	ProductIndustrial    BaseProduct = "INDP"
	ProductMetals        BaseProduct = "METL"
	ProductMultiExotic   BaseProduct = "MCEX"
	ProductPaper         BaseProduct = "PAPR"
	ProductPolypropylene BaseProduct = "POLY"
	ProductInflation     BaseProduct = "INFL"
	ProductOfficialStats BaseProduct = "OEST"
	ProductOtherC10      BaseProduct = "OTHC"
	ProductOther         BaseProduct = "OTHR"
)

var baseProducts = map[BaseProduct]string{
	ProductAgricultural:  "Agricultural",
	ProductEnergy:        "Energy",
	ProductEnvironmental: "Environmental",
	ProductFreight:       "Freight",
	ProductFertilizer:    "Fertilizer",
	ProductIndustrial:    "Industrial products",
	ProductMetals:        "Metals",
	ProductMultiExotic:   "Multi Commodity Exotic",
	ProductPaper:         "Paper",
	ProductPolypropylene: "Polypropylene",
	ProductInflation:     "Inflation",
	ProductOfficialStats: "Official economic statistics",
	ProductOtherC10:      "Other C10",
	ProductOther:         "Other",
}

func (p BaseProduct) Description() string { return baseProducts[p] }

// SubProduct is the second level of the commodity product classification.
type SubProduct string

const (
	// AGRI
	SubGrainsOilSeeds SubProduct = "GROS"
	SubSofts          SubProduct = "SOFT"
	SubPotato         SubProduct = "POTA"
	SubOliveOil       SubProduct = "OOLI"
	SubDairy          SubProduct = "DIRY"
	SubForestry       SubProduct = "FRST"
	SubSeafood        SubProduct = "SEAF"
	SubLivestock      SubProduct = "LSTK"
	SubGrain          SubProduct = "GRIN"

	// NRGY
	SubElectricity SubProduct = "ELEC"
	SubNaturalGas  SubProduct = "NGAS"
	SubOil         SubProduct = "OILP"
	SubCoal        SubProduct = "COAL"
	SubInterEnergy SubProduct = "INRG"
	SubRenewable   SubProduct = "RNNG"
	SubLightEnds   SubProduct = "LGHT"
	SubDistillates SubProduct = "DIST"

	// ENVR
	SubEmissions     SubProduct = "EMIS"
	SubWeather       SubProduct = "WTHR"
	SubCarbonRelated SubProduct = "CRBR"

	// FRGT
	SubWet            SubProduct = "WETF"
	SubDry            SubProduct = "DRYF"
	SubContainerShips SubProduct = "CSHP"

	// FRTL
	SubAmmonia SubProduct = "AMMO"
	SubDAP     SubProduct = "DAPH"
	SubPotash  SubProduct = "PTSH"
	SubSulphur SubProduct = "SLPH"
	SubUrea    SubProduct = "UREA"
	SubUAN     SubProduct = "UAAN"

	// INDP
	SubConstruction  SubProduct = "CSTR"
	SubManufacturing SubProduct = "MFTG"

	// METL
	SubNonPrecious SubProduct = "NPRM"
	SubPrecious    SubProduct = "PRME"

	// PAPR
	SubContainerboard SubProduct = "CBRD"
	SubNewsprint      SubProduct = "NSPT"
	SubPulp           SubProduct = "PULP"
	SubPlastic        SubProduct = "PLST"
)

var subProducts = map[SubProduct]string{
	SubGrainsOilSeeds: "Grains and Oil Seeds",
	SubSofts:          "Softs",
	SubPotato:         "Potato",
	SubOliveOil:       "Olive oil",
	SubDairy:          "Dairy",
	SubForestry:       "Forestry",
	SubSeafood:        "Seafood",
	SubLivestock:      "Livestock",
	SubGrain:          "Grain",
	SubElectricity:    "Electricity",
	SubNaturalGas:     "Natural Gas",
	SubOil:            "Oil",
	SubCoal:           "Coal",
	SubInterEnergy:    "Inter Energy",
	SubRenewable:      "Renewable energy",
	SubLightEnds:      "Light ends",
	SubDistillates:    "Distillates",
	SubEmissions:      "Emissions",
	SubWeather:        "Weather",
	SubCarbonRelated:  "Carbon related",
	SubWet:            "Wet",
	SubDry:            "Dry",
	SubContainerShips: "Container ships",
	SubAmmonia:        "Ammonia",
	SubDAP:            "DAP (Diammonium Phosphate)",
	SubPotash:         "Potash",
	SubSulphur:        "Sulphur",
	SubUrea:           "Urea",
	SubUAN:            "UAN (urea and ammonium nitrate)",
	SubConstruction:   "Construction",
	SubManufacturing:  "Manufacturing",
	SubNonPrecious:    "Non Precious",
	SubPrecious:       "Precious",
	SubContainerboard: "Containerboard",
	SubNewsprint:      "Newsprint",
	SubPulp:           "Pulp",
	SubPlastic:        "Plastic",
}

func (s SubProduct) Description() string { return subProducts[s] }

// FurtherSubProduct is the third level of the commodity product
// classification.
type FurtherSubProduct string

const (
	// GROS
	FurtherFeedWheat FurtherSubProduct = "FWHT"
	FurtherSoybeans  FurtherSubProduct = "SOYB"
	FurtherMaize     FurtherSubProduct = "CORN"
	FurtherRapeseed  FurtherSubProduct = "RPSD"
	FurtherRice      FurtherSubProduct = "RICE"

	// SOFT
	FurtherCocoa         FurtherSubProduct = "CCOA"
	FurtherRobustaCoffee FurtherSubProduct = "ROBU"
	FurtherWhiteSugar    FurtherSubProduct = "WHSG"
	FurtherRawSugar      FurtherSubProduct = "BRWN"

	// OOLI
	FurtherLampante FurtherSubProduct = "LAMP"

	// GRIN
	FurtherMillingWheat FurtherSubProduct = "MWHT"

	// ELEC
	FurtherBaseLoad FurtherSubProduct = "BSLD"
	FurtherFITR     FurtherSubProduct = "FITR"
	FurtherPeakLoad FurtherSubProduct = "PKLD"
	FurtherOffPeak  FurtherSubProduct = "OFFP"

	// NGAS
	FurtherGaspool FurtherSubProduct = "GASP"
	FurtherLNG     FurtherSubProduct = "LNGG"
	FurtherNCG     FurtherSubProduct = "NCGG"
	FurtherTTF     FurtherSubProduct = "TTFG"

	// OILP
	FurtherBakken     FurtherSubProduct = "BAKK"
	FurtherBiodiesel  FurtherSubProduct = "BDSL"
	FurtherBrent      FurtherSubProduct = "BRNT"
	FurtherBrentNX    FurtherSubProduct = "BRNX"
	FurtherCanadian   FurtherSubProduct = "CNDA"
	FurtherCondensate FurtherSubProduct = "COND"
	FurtherDiesel     FurtherSubProduct = "DSEL"
	FurtherDubai      FurtherSubProduct = "DUBA"
	FurtherESPO       FurtherSubProduct = "ESPO"
	FurtherEthanol    FurtherSubProduct = "ETHA"
	FurtherFuel       FurtherSubProduct = "FUEL"
	FurtherFuelOil    FurtherSubProduct = "FOIL"
	FurtherGasoil     FurtherSubProduct = "GOIL"
	FurtherGasoline   FurtherSubProduct = "GSLN"
	FurtherHeatingOil FurtherSubProduct = "HEAT"
	FurtherJetFuel    FurtherSubProduct = "JTFL"
	FurtherKerosene   FurtherSubProduct = "KERO"
	FurtherLLS        FurtherSubProduct = "LLSO"
	FurtherMars       FurtherSubProduct = "MARS"
	FurtherNaphtha    FurtherSubProduct = "NAPH"
	FurtherNGL        FurtherSubProduct = "NGLO"
	FurtherTapis      FurtherSubProduct = "TAPI"
	FurtherUrals      FurtherSubProduct = "URAL"
	FurtherWTI        FurtherSubProduct = "WTIO"

	// EMIS
	FurtherCER  FurtherSubProduct = "CERE"
	FurtherERU  FurtherSubProduct = "ERUE"
	FurtherEUA  FurtherSubProduct = "EUAE"
	FurtherEUAA FurtherSubProduct = "EUAA"

	// WETF
	FurtherTankers FurtherSubProduct = "TNKR"

	// DRYF
	FurtherDryBulkCarriers FurtherSubProduct = "DBCR"

	// NPRM
	FurtherAluminium      FurtherSubProduct = "ALUM"
	FurtherAluminiumAlloy FurtherSubProduct = "ALUA"
	FurtherCobalt         FurtherSubProduct = "CBLT"
	FurtherCopper         FurtherSubProduct = "COPR"
	FurtherIronOre        FurtherSubProduct = "IRON"
	FurtherLead           FurtherSubProduct = "LEAD"
	FurtherMolybdenum     FurtherSubProduct = "MOLY"
	FurtherNASAAC         FurtherSubProduct = "NASC"
	FurtherNickel         FurtherSubProduct = "NICK"
	FurtherSteel          FurtherSubProduct = "STEL"
	FurtherTin            FurtherSubProduct = "TINN"
	FurtherZinc           FurtherSubProduct = "ZINC"

	// PRME
	FurtherGold      FurtherSubProduct = "GOLD"
	FurtherSilver    FurtherSubProduct = "SLVR"
	FurtherPlatinum  FurtherSubProduct = "PTNM"
	FurtherPalladium FurtherSubProduct = "PLDM"

	// Various
	FurtherOther FurtherSubProduct = "OTHR"
)

var furtherSubProducts = map[FurtherSubProduct]string{
	FurtherFeedWheat:       "Feed Wheat",
	FurtherSoybeans:        "Soybeans",
	FurtherMaize:           "Maize",
	FurtherRapeseed:        "Rapeseed",
	FurtherRice:            "Rice",
	FurtherCocoa:           "Cocoa",
	FurtherRobustaCoffee:   "Robusta Coffee",
	FurtherWhiteSugar:      "White Sugar",
	FurtherRawSugar:        "Raw Sugar",
	FurtherLampante:        "Lampante",
	FurtherMillingWheat:    "Milling Wheat",
	FurtherBaseLoad:        "Base load",
	FurtherFITR:            "Financial Transmission Rights",
	FurtherPeakLoad:        "Peak load",
	FurtherOffPeak:         "Off-peak",
	FurtherGaspool:         "GASPOOL",
	FurtherLNG:             "LNG",
	FurtherNCG:             "NCG",
	FurtherTTF:             "TTF",
	FurtherBakken:          "Bakken",
	FurtherBiodiesel:       "Biodiesel",
	FurtherBrent:           "Brent",
	FurtherBrentNX:         "Brent NX",
	FurtherCanadian:        "Canadian",
	FurtherCondensate:      "Condensate",
	FurtherDiesel:          "Diesel",
	FurtherDubai:           "Dubai",
	FurtherESPO:            "ESPO",
	FurtherEthanol:         "Ethanol",
	FurtherFuel:            "Fuel",
	FurtherFuelOil:         "Fuel Oil",
	FurtherGasoil:          "Gasoil",
	FurtherGasoline:        "Gasoline",
	FurtherHeatingOil:      "Heating Oil",
	FurtherJetFuel:         "Jet Fuel",
	FurtherKerosene:        "Kerosene",
	FurtherLLS:             "Light Louisiana Sweet (LLS)",
	FurtherMars:            "MARS",
	FurtherNaphtha:         "Naptha",
	FurtherNGL:             "NGL",
	FurtherTapis:           "Tapis",
	FurtherUrals:           "Urals",
	FurtherWTI:             "WTI",
	FurtherCER:             "CER",
	FurtherERU:             "ERU",
	FurtherEUA:             "EUA",
	FurtherEUAA:            "EUAA",
	FurtherTankers:         "Tankers",
	FurtherDryBulkCarriers: "Dry bulk carriers",
	FurtherAluminium:       "Aluminium",
	FurtherAluminiumAlloy:  "Aluminium Alloy",
	FurtherCobalt:          "Cobalt",
	FurtherCopper:          "Copper",
	FurtherIronOre:         "Iron ore",
	FurtherLead:            "Lead",
	FurtherMolybdenum:      "Molybdenum",
	FurtherNASAAC:          "NASAAC",
	FurtherNickel:          "Nickel",
	FurtherSteel:           "Steel",
	FurtherTin:             "Tin",
	FurtherZinc:            "Zinc",
	FurtherGold:            "Gold",
	FurtherSilver:          "Silver",
	FurtherPlatinum:        "Platinum",
	FurtherPalladium:       "Palladium",
	FurtherOther:           "Other",
}

func (f FurtherSubProduct) Description() string { return furtherSubProducts[f] }

// TransactionType is the transaction type as specified by the trading venue.
type TransactionType string

const (
	TransactionFutures      TransactionType = "FUTR"
	TransactionOptions      TransactionType = "OPTN"
	TransactionTAPOS        TransactionType = "TAPO"
	TransactionSwaps        TransactionType = "SWAP"
	TransactionMinis        TransactionType = "MINI"
	TransactionOTC          TransactionType = "OTCT"
	TransactionOutright     TransactionType = "ORIT"
	TransactionCrack        TransactionType = "CRCK"
	TransactionDifferential TransactionType = "DIFF"
	TransactionOther        TransactionType = "OTHR"
)

var transactionTypes = map[TransactionType]string{
	TransactionFutures:      "Futures",
	TransactionOptions:      "Options",
	TransactionTAPOS:        "TAPOS",
	TransactionSwaps:        "Swaps",
	TransactionMinis:        "Minis",
	TransactionOTC:          "OTC",
	TransactionOutright:     "Outright",
	TransactionCrack:        "Crack",
	TransactionDifferential: "Differential",
	TransactionOther:        "Other",
}

func (t TransactionType) Description() string { return transactionTypes[t] }

// FinalPriceType is the final price type as specified by the trading venue.
type FinalPriceType string

const (
	FinalPriceArgusMcCloskey FinalPriceType = "ARGM"
	FinalPriceBaltic         FinalPriceType = "BLTC"
	FinalPriceExchange       FinalPriceType = "EXOF"
	FinalPriceGlobalCoal     FinalPriceType = "GBCL"
	FinalPriceIHSMcCloskey   FinalPriceType = "IHSM"
	FinalPricePlatts         FinalPriceType = "PLAT"
	FinalPriceOther          FinalPriceType = "OTHR"
)

var finalPriceTypes = map[FinalPriceType]string{
	FinalPriceArgusMcCloskey: "Argus/McCloskey",
	FinalPriceBaltic:         "Baltic",
	FinalPriceExchange:       "Exchange",
	FinalPriceGlobalCoal:     "GlobalCOAL",
	FinalPriceIHSMcCloskey:   "HIS McCloskey",
	FinalPricePlatts:         "Platts",
	FinalPriceOther:          "Other",
}

func (f FinalPriceType) Description() string { return finalPriceTypes[f] }

// FxType classifies the underlying currency pair of an FX derivative.
type FxType string

const (
	FxCrossRates      FxType = "FXCR"
	FxEmergingMarkets FxType = "FXEM"
	FxMajors          FxType = "FXMJ"
)

var fxTypes = map[FxType]string{
	FxCrossRates:      "FX Cross Rates",
	FxEmergingMarkets: "FX Emerging Markets",
	FxMajors:          "FX Majors",
}

func (f FxType) Description() string { return fxTypes[f] }

// StrikePriceType discriminates how a strike price is expressed.
type StrikePriceType string

const (
	StrikeMonetaryValue StrikePriceType = "MNTRY"
	StrikePercentage    StrikePriceType = "PCTG"
	StrikeYield         StrikePriceType = "YLD"
	StrikeBasisPoints   StrikePriceType = "BSISPTS"
	StrikeNoPrice       StrikePriceType = "NOPRC"
)

var strikePriceTypes = map[StrikePriceType]string{
	StrikeMonetaryValue: "monetary value",
	StrikePercentage:    "percentage",
	StrikeYield:         "yield",
	StrikeBasisPoints:   "basis points",
	StrikeNoPrice:       "no price",
}

func (s StrikePriceType) Description() string { return strikePriceTypes[s] }
