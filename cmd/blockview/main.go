// Command blockview loads one reference chromosome, replays a list of
// interactions on the block view and prints the resulting layout as JSON,
// optionally writing an SVG snapshot.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yumyai/synbrowser/internal/util"
	"github.com/yumyai/synbrowser/logger"
	"github.com/yumyai/synbrowser/pkg/browser"
	"github.com/yumyai/synbrowser/pkg/client"
	"github.com/yumyai/synbrowser/pkg/db"
	"github.com/yumyai/synbrowser/pkg/feature"
	"github.com/yumyai/synbrowser/pkg/genome"
	"github.com/yumyai/synbrowser/pkg/model"
	"github.com/yumyai/synbrowser/pkg/render"
)

const version = "0.1.0"

func main() {
	dotenvErr := godotenv.Load()
	dataDir, _ := util.Getenv("SYNBROWSER_DATA", "./data")
	defaultDB, _ := util.Getenv("SYNBROWSER_DB", filepath.Join(dataDir, "db/synteny.db"))
	defaultSpecies, _ := util.Getenv("SYNBROWSER_SPECIES", filepath.Join(dataDir, "species"))

	var (
		pathDB, pathSpecies, server, rawInterval string
		rawActions, rawGenes, symbol, pathSVG    string
		refTaxon, compTaxon                      int
		width                                    float64
		verbose, printVersion                    bool
	)
	flag.StringVar(&pathDB, "path_db", defaultDB, "Path to the synteny database")
	flag.StringVar(&pathSpecies, "path_species", defaultSpecies, "Path to the species config directory")
	flag.StringVar(&server, "server", "", "Read data from a synbrowser server instead of the database")
	flag.IntVar(&refTaxon, "ref_taxon", 10090, "Reference taxon id")
	flag.IntVar(&compTaxon, "comp_taxon", 9606, "Comparison taxon id")
	flag.StringVar(&rawInterval, "interval", "", "Reference interval, e.g. Chr1:1,000,000-5,000,000")
	flag.Float64Var(&width, "width", 1000, "Drawing width in pixels")
	flag.StringVar(&rawActions, "actions", "", "Interactions to replay, separated by ';': pan+, pan-, zoom+, zoom-, reset, match, true, key names or intervals such as Chr1:1,000-5,000")
	flag.StringVar(&rawGenes, "genes", "", "Gene ids to highlight (comma separated)")
	flag.StringVar(&symbol, "symbol", "", "Filter genes by symbol")
	flag.StringVar(&pathSVG, "path_svg", "", "Write an SVG snapshot to path (stdout with -)")
	flag.BoolVar(&verbose, "verbose", false, "Verbose")
	flag.BoolVar(&printVersion, "version", false, "Print version and quit")
	flag.Parse()

	if printVersion {
		fmt.Println("blockview v" + version)
		os.Exit(0)
	}

	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	if err := logger.InitLogger(level); err != nil {
		panic(err)
	}
	defer logger.Sync()
	if dotenvErr != nil {
		logger.Debug("No .env found, using local environment")
	}

	if err := run(pathDB, pathSpecies, server, rawInterval, rawActions, rawGenes, symbol, pathSVG, refTaxon, compTaxon, width); err != nil {
		logger.Error("blockview failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func findSpecies(all []*genome.Species, taxon int) (*genome.Species, error) {
	for _, s := range all {
		if s.TaxonID() == taxon {
			return s, nil
		}
	}
	return nil, fmt.Errorf("no species config for taxon %d", taxon)
}

func run(pathDB, pathSpecies, server, rawInterval, rawActions, rawGenes, symbol, pathSVG string, refTaxon, compTaxon int, width float64) error {
	iv, err := genome.ParseInterval(rawInterval)
	if err != nil {
		return err
	}
	species, err := genome.LoadSpeciesDir(pathSpecies)
	if err != nil {
		return err
	}
	ref, err := findSpecies(species, refTaxon)
	if err != nil {
		return err
	}
	comp, err := findSpecies(species, compTaxon)
	if err != nil {
		return err
	}

	var src model.Source
	if server != "" {
		c, err := client.New(server, nil, logger.L())
		if err != nil {
			return err
		}
		src = c
	} else {
		store, err := db.Open(pathDB)
		if err != nil {
			return err
		}
		defer store.Close()
		src = store
	}

	loaded, err := model.NewManager(src, logger.L()).Load(context.Background(), model.Request{
		RefTaxon:    refTaxon,
		CompTaxon:   compTaxon,
		Chr:         iv.Chr,
		TrackHeight: render.TrackHeight,
	})
	if err != nil {
		return err
	}

	prefs, err := preferencesFromEnv()
	if err != nil {
		return err
	}
	b := browser.New(render.DefaultContext(browser.AppContext{
		Logger:      logger.L(),
		Reference:   ref,
		Comparison:  comp,
		Preferences: prefs,
	}), width, nil)
	if err := b.Render(browser.LoadParams{Interval: iv, Blocks: loaded.Blocks, Data: loaded.Data}); err != nil {
		return err
	}

	var genes []feature.Gene
	for _, id := range strings.Split(rawGenes, ",") {
		if id = strings.TrimSpace(id); id != "" {
			genes = append(genes, feature.Gene{GeneID: id})
		}
	}
	b.SetHighlightedFeatures(genes, loaded.QTLs)
	if symbol != "" {
		if err := b.SetFilterMatches(feature.BySymbol(loaded.Data, symbol, feature.Both)); err != nil {
			return err
		}
	}

	for _, a := range splitActions(rawActions) {
		if err := applyAction(b, a); err != nil {
			return fmt.Errorf("action %q: %w", a, err)
		}
	}

	if pathSVG != "" {
		if err := writeSVG(b, pathSVG); err != nil {
			return err
		}
		if pathSVG == "-" {
			return nil
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(currentLayout(b))
}

func writeSVG(b *browser.Browser, path string) error {
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return render.RenderBlockViewSVG(w, b)
}
