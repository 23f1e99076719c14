// Command gofirds searches, downloads, parses and stores instrument
// reference data files from the European and UK registers.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gofirds/gofirds"
	"github.com/gofirds/gofirds/db"
	"github.com/gofirds/gofirds/download"
	"github.com/gofirds/gofirds/xmltree"
)

var version = "dev"

var logger hclog.Logger

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gofirds",
	Short: "Work with instrument reference data files from the EU and UK registers",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = hclog.New(&hclog.LoggerOptions{
			Name:  "gofirds",
			Level: hclog.LevelFromString(viper.GetString("log-level")),
		})
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.SetEnvPrefix("GOFIRDS")
	viper.AutomaticEnv()

	rootCmd.AddCommand(versionCmd, searchCmd, downloadCmd, parseCmd, loadCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gofirds %s\n", version)
	},
}

// searcherFor picks a register search client by name.
func searcherFor(source string) (download.Searcher, error) {
	switch source {
	case "esma":
		return download.NewEsmaSearcher(logger), nil
	case "fca":
		return download.NewFcaSearcher(logger), nil
	default:
		return nil, fmt.Errorf("unknown source %q (want esma or fca)", source)
	}
}

func dateRange(cmd *cobra.Command) (from, to time.Time, err error) {
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	if from, err = time.Parse("2006-01-02", fromStr); err != nil {
		return from, to, fmt.Errorf("bad --from date: %w", err)
	}
	if to, err = time.Parse("2006-01-02", toStr); err != nil {
		return from, to, fmt.Errorf("bad --to date: %w", err)
	}
	return from, to, nil
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "List downloadable files published in a date range",
	Long: `Search a register's file index and print one JSON document per line.

Example:
  gofirds search --source esma --type FULINS --from 2026-01-05 --to 2026-01-06`,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")
		fileType, _ := cmd.Flags().GetString("type")
		from, to, err := dateRange(cmd)
		if err != nil {
			return err
		}
		searcher, err := searcherFor(source)
		if err != nil {
			return err
		}
		docs, err := searcher.Search(cmd.Context(), from, to, download.FileType(fileType))
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		for _, doc := range docs {
			if err := enc.Encode(doc); err != nil {
				return err
			}
		}
		logger.Info("search finished", "source", source, "files", len(docs))
		return nil
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download and extract files published in a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")
		fileType, _ := cmd.Flags().GetString("type")
		dir, _ := cmd.Flags().GetString("dir")
		parallel, _ := cmd.Flags().GetInt("parallel")
		from, to, err := dateRange(cmd)
		if err != nil {
			return err
		}
		searcher, err := searcherFor(source)
		if err != nil {
			return err
		}
		docs, err := searcher.Search(cmd.Context(), from, to, download.FileType(fileType))
		if err != nil {
			return err
		}
		dl := download.NewDownloader(nil, logger)
		dl.Overwrite, _ = cmd.Flags().GetBool("overwrite")
		dl.KeepZip, _ = cmd.Flags().GetBool("keep-zip")

		if unzip, _ := cmd.Flags().GetBool("unzip"); !unzip {
			for _, doc := range docs {
				p, err := dl.DownloadZip(cmd.Context(), doc, dir)
				if err != nil {
					return err
				}
				fmt.Println(p)
			}
			return nil
		}
		paths, err := dl.DownloadAll(cmd.Context(), docs, dir, parallel)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil
	},
}

// iterOptions assembles streaming options from the shared parse/load flags.
func iterOptions(cmd *cobra.Command) (gofirds.DispatchTable, gofirds.Options, error) {
	delta, _ := cmd.Flags().GetBool("delta")
	validate, _ := cmd.Flags().GetBool("validate-rates")
	nsmapPath, _ := cmd.Flags().GetString("nsmap")

	table := gofirds.FullTable()
	ns := gofirds.DefaultFullNSMap
	if delta {
		table = gofirds.DeltaTable()
		ns = gofirds.DefaultDeltaNSMap
	}
	if nsmapPath != "" {
		overrides, err := xmltree.LoadNSMap(nsmapPath)
		if err != nil {
			return nil, gofirds.Options{}, err
		}
		ns = ns.Merge(overrides)
	}
	return table, gofirds.Options{NSMap: ns, ValidateInterestRate: validate}, nil
}

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Decode a reference data file to JSON lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, opts, err := iterOptions(cmd)
		if err != nil {
			return err
		}
		it, err := gofirds.IterateFile(args[0], table, opts)
		if err != nil {
			return err
		}
		defer it.Close()

		enc := json.NewEncoder(os.Stdout)
		n := 0
		for it.Next() {
			if err := enc.Encode(it.Record()); err != nil {
				return err
			}
			n++
		}
		if err := it.Err(); err != nil {
			return err
		}
		logger.Info("parse finished", "file", args[0], "records", n, "counts", fmt.Sprint(it.Counts()))
		return nil
	},
}

var loadCmd = &cobra.Command{
	Use:   "load [file...]",
	Short: "Decode reference data files into a SQLite database",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, opts, err := iterOptions(cmd)
		if err != nil {
			return err
		}
		dbPath, _ := cmd.Flags().GetString("db")
		validFromStr, _ := cmd.Flags().GetString("valid-from")
		validFrom := time.Now().UTC()
		if validFromStr != "" {
			if validFrom, err = time.Parse("2006-01-02", validFromStr); err != nil {
				return fmt.Errorf("bad --valid-from date: %w", err)
			}
		}

		store, err := db.Open(dbPath, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		for _, path := range args {
			it, err := gofirds.IterateFile(path, table, opts)
			if err != nil {
				return err
			}
			n := 0
			for it.Next() {
				if err := store.AddRecord(cmd.Context(), it.Record(), validFrom); err != nil {
					it.Close()
					return err
				}
				n++
			}
			err = it.Err()
			it.Close()
			if err != nil {
				return err
			}
			logger.Info("file loaded", "file", path, "records", n)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{searchCmd, downloadCmd} {
		c.Flags().String("source", "esma", "register to query (esma or fca)")
		c.Flags().String("type", "", "file type filter (FULINS, DLTINS or FULCAN)")
		c.Flags().String("from", "", "start of the publication date range (YYYY-MM-DD)")
		c.Flags().String("to", "", "end of the publication date range (YYYY-MM-DD)")
		c.MarkFlagRequired("from")
		c.MarkFlagRequired("to")
	}
	downloadCmd.Flags().String("dir", ".", "directory to download into")
	downloadCmd.Flags().Int("parallel", 4, "maximum concurrent downloads")
	downloadCmd.Flags().Bool("unzip", true, "extract the XML payload after downloading")
	downloadCmd.Flags().Bool("keep-zip", false, "keep the zip after extracting")
	downloadCmd.Flags().Bool("overwrite", false, "replace files that already exist")

	for _, c := range []*cobra.Command{parseCmd, loadCmd} {
		c.Flags().Bool("delta", false, "treat input as a delta file")
		c.Flags().Bool("validate-rates", false, "reject debt records with unresolvable interest rates")
		c.Flags().String("nsmap", "", "YAML file overriding namespace prefixes")
	}
	loadCmd.Flags().String("db", "firds.db", "SQLite database path")
	loadCmd.Flags().String("valid-from", "", "validity start date recorded for loaded records (YYYY-MM-DD, default today)")
}
