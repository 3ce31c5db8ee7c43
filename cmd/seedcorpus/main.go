// Command seedcorpus writes a synthetic patent corpus for local play.
// Records are assembled from fixed phrase pools, so a fixed seed always
// produces the same batch files.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/poiesic/priorart/core"
	"github.com/poiesic/priorart/docstore"
)

var (
	outDir    = flag.String("out", "data/patent_data_small", "directory to write batch files into")
	docCount  = flag.Int("documents", 120, "number of patent records to generate")
	batchSize = flag.Int("batch-size", 40, "records per batch file")
	seed      = flag.Int64("seed", 2024, "random seed")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

var components = []string{
	"wireless sensor array",
	"battery management unit",
	"vehicle braking controller",
	"display panel assembly",
	"neural processing module",
	"hydraulic actuator valve",
	"optical waveguide coupler",
	"thermal dissipation housing",
	"antenna matching network",
	"fuel cell membrane stack",
	"lidar scanning head",
	"haptic feedback surface",
}

var actions = []string{
	"monitor",
	"regulate",
	"calibrate",
	"transmit",
	"isolate",
	"amplify",
	"synchronize",
	"attenuate",
}

var subjects = []string{
	"tire pressure across a vehicle network",
	"charge distribution between adjacent cells",
	"braking torque under variable load",
	"pixel luminance in low ambient light",
	"inference workloads at the network edge",
	"fluid pressure in a closed circuit",
	"signal phase across coupled channels",
	"heat flux away from dense packaging",
	"impedance over a wide frequency band",
	"proton exchange under thermal cycling",
	"point cloud density at long range",
	"touch response on curved glass",
}

var qualities = []string{
	"Adaptive",
	"Distributed",
	"Fault-Tolerant",
	"Low-Power",
	"Modular",
	"Self-Calibrating",
}

var cpcCodes = []string{
	"B60C 23/04",
	"B60K 28/10",
	"B60R 16/02",
	"G06F 16/33",
	"G06N 3/08",
	"G09G 3/20",
	"H01M 10/42",
	"H04L 12/28",
	"H04W 84/18",
	"F15B 13/04",
}

func claimSentence(rng *rand.Rand) string {
	return fmt.Sprintf("A %s configured to %s %s.",
		components[rng.Intn(len(components))],
		actions[rng.Intn(len(actions))],
		subjects[rng.Intn(len(subjects))])
}

// generateRecords yields n synthetic patent records. Roughly one in ten
// records omits a critical field so filtered loads have something to drop.
func generateRecords(rng *rand.Rand, n int) iter.Seq[core.Document] {
	return func(yield func(core.Document) bool) {
		for i := 0; i < n; i++ {
			component := components[rng.Intn(len(components))]
			doc := core.Document{
				core.FieldDocNumber: fmt.Sprintf("2024%07d", 1000001+i),
				core.FieldTitle: fmt.Sprintf("%s %s",
					qualities[rng.Intn(len(qualities))], component),
				core.FieldClassification: cpcCodes[rng.Intn(len(cpcCodes))],
			}

			if rng.Intn(10) != 0 {
				doc[core.FieldAbstract] = fmt.Sprintf(
					"The disclosure describes a %s. %s", component, claimSentence(rng))
			}
			if rng.Intn(10) != 0 {
				claims := make([]string, 0, 4)
				for c := 1 + rng.Intn(3); c >= 0; c-- {
					claims = append(claims, claimSentence(rng))
				}
				doc[core.FieldClaims] = claims
			}

			if !yield(doc) {
				return
			}
		}
	}
}

// writeBatches splits records into batch files named the way the loader
// expects. Returns how many files were written.
func writeBatches(dir string, records iter.Seq[core.Document], size int) (int, error) {
	files := 0
	batch := make([]core.Document, 0, size)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		files++
		data, err := json.MarshalIndent(batch, "", "  ")
		if err != nil {
			return err
		}
		name := filepath.Join(dir, fmt.Sprintf("patents_ipa%04d.json", files))
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return err
		}
		batch = batch[:0]
		return nil
	}

	for doc := range records {
		batch = append(batch, doc)
		if len(batch) == size {
			if err := flush(); err != nil {
				return files, err
			}
		}
	}
	return files, flush()
}

func main() {
	flag.Parse()

	if *docCount < 1 || *batchSize < 1 {
		panic("documents and batch-size must be positive")
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}

	rng := rand.New(rand.NewSource(*seed))
	files, err := writeBatches(*outDir, generateRecords(rng, *docCount), *batchSize)
	if err != nil {
		panic(err)
	}
	slog.Info("corpus written", "dir", *outDir, "documents", *docCount, "files", files)

	// Read the corpus back through the loader to prove it is usable.
	loader, err := docstore.NewLoader(*outDir)
	if err != nil {
		panic(err)
	}
	docs, err := loader.Load()
	if err != nil {
		panic(err)
	}
	if len(docs) != *docCount {
		panic(fmt.Sprintf("verification failed: wrote %d records, loaded %d", *docCount, len(docs)))
	}

	cov := docs.Coverage()
	slog.Info("corpus verified",
		"documents", cov.Total,
		"claims_pct", fmt.Sprintf("%.1f", cov.Percent(core.FieldClaims)),
		"abstract_pct", fmt.Sprintf("%.1f", cov.Percent(core.FieldAbstract)))
}
