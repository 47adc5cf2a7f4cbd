package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"plotworld/internal/geom"
	"plotworld/internal/persistence/indexdb"
	persistlog "plotworld/internal/persistence/log"
	"plotworld/internal/plots"
	"plotworld/internal/sim/catalogs"
	"plotworld/internal/sim/world"
	"plotworld/internal/testworld"
	"plotworld/internal/transport/inspector"
)

func main() {
	var (
		configDir  = flag.String("configs", "./configs", "config directory")
		tuningPath = flag.String("tuning", "", "path to testworld.yaml (default: <configs>/testworld.yaml)")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		plotID     = flag.String("plot", "", "generate a single plot by id (default: all registered plots)")
		originFlag = flag.String("origin", "0,4,0", "world origin as x,y,z")
		seed       = flag.Int64("seed", 1337, "world seed")
		height     = flag.Int("height", 16, "world height in blocks")
		boundary   = flag.Int("boundary", 0, "world boundary radius (0: default)")
		actorName  = flag.String("actor", "generator", "name of the driving player actor")
		listen     = flag.String("listen", "", "inspector listen address (empty to disable)")
		disableDB  = flag.Bool("disable_db", false, "disable the run index")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[genworld] ", log.LstdFlags|log.Lmicroseconds)

	origin, err := parseOrigin(*originFlag)
	if err != nil {
		logger.Fatalf("parse origin: %v", err)
	}

	cats, err := catalogs.Load(*configDir)
	if err != nil {
		logger.Fatalf("load catalogs: %v", err)
	}

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "testworld.yaml")
		if _, statErr := os.Stat(tp); statErr != nil {
			tp = "" // fall back to built-in defaults
		}
	}
	cfg, err := testworld.LoadConfig(tp)
	if err != nil {
		logger.Fatalf("load tuning: %v", err)
	}

	registry := plots.DefaultRegistry()
	var plotList []*plots.Plot
	if *plotID != "" {
		p, err := registry.ByID(*plotID)
		if err != nil {
			logger.Fatalf("resolve plot: %v", err)
		}
		plotList = []*plots.Plot{p}
	} else {
		plotList = registry.CreateAll()
	}

	w, err := world.New(world.WorldConfig{Seed: *seed, Height: *height, BoundaryR: *boundary}, cats)
	if err != nil {
		logger.Fatalf("create world: %v", err)
	}
	actor := w.SpawnEntity(world.KindPlayer, origin)
	logger.Printf("actor %q spawned as %s at %v", *actorName, actor, origin)

	layout, err := testworld.NewLayout(origin, plotList, cfg)
	if err != nil {
		logger.Fatalf("layout: %v", err)
	}
	gen, err := testworld.NewGenerator(w, actor, layout, cfg)
	if err != nil {
		logger.Fatalf("generator: %v", err)
	}

	started := time.Now()
	rep, err := gen.Generate()
	if err != nil {
		logger.Fatalf("generate: %v", err)
	}
	logger.Printf("generated %d plots in %s (packed %dx%d, cleared %d chunks, swept %d entities)",
		len(rep.Plots), time.Since(started).Round(time.Millisecond),
		rep.PackedW, rep.PackedH, rep.ClearedChunks, rep.RemovedEntities)

	if err := w.MoveEntity(actor, layout.SuitableStartPos()); err != nil {
		logger.Fatalf("move actor: %v", err)
	}
	logger.Printf("start position: %v", layout.SuitableStartPos())

	if err := writeAudit(*dataDir, rep); err != nil {
		logger.Fatalf("audit log: %v", err)
	}

	if !*disableDB {
		ix, err := indexdb.Open(filepath.Join(*dataDir, "index", "runs.db"))
		if err != nil {
			logger.Fatalf("open run index: %v", err)
		}
		if err := ix.RecordRun(context.Background(), rep); err != nil {
			_ = ix.Close()
			logger.Fatalf("record run: %v", err)
		}
		if err := ix.Close(); err != nil {
			logger.Fatalf("close run index: %v", err)
		}
	}

	if *listen != "" {
		srv := inspector.NewServer(w, rep, logger)
		http.HandleFunc("/v1/inspect", srv.Handler())
		logger.Printf("inspector listening on %s", *listen)
		if err := http.ListenAndServe(*listen, nil); err != nil {
			logger.Fatalf("inspector: %v", err)
		}
	}
}

func writeAudit(dataDir string, rep *testworld.Report) error {
	lw, err := persistlog.NewGenLogWriter(filepath.Join(dataDir, "genlog"), rep.RunID)
	if err != nil {
		return err
	}
	defer lw.Close()

	for _, p := range rep.Plots {
		if err := lw.Write(persistlog.Entry{RunID: rep.RunID, Step: "plot", Detail: p}); err != nil {
			return err
		}
	}
	if err := lw.Write(persistlog.Entry{RunID: rep.RunID, Step: "report", Detail: rep}); err != nil {
		return err
	}
	return lw.Close()
}

func parseOrigin(s string) (geom.Vec3i, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geom.Vec3i{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var out [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return geom.Vec3i{}, fmt.Errorf("coordinate %d: %w", i, err)
		}
		out[i] = v
	}
	return geom.Vec3i{X: out[0], Y: out[1], Z: out[2]}, nil
}
