// Command assignd is a demo driver for the path-based traffic assignment
// core in internal/assignment. It wires up a small hand-built network,
// runs the method-of-successive-averages outer loop to user-equilibrium,
// and prints the converged link flows and Beckmann objective.
//
// Architecture:
//
//	config (pkg/config) -> logger (pkg/logger) -> metrics (pkg/metrics) ->
//	tracing (pkg/telemetry) -> internal/assignment core, driven by
//	internal/shortestpath (path discovery) and internal/qp (per-origin
//	subproblem solves), fanned out across origins with errgroup and
//	folded back into the ledger with a single shared MSA stepsize.
//
// MSA (stepsize = 1/(iteration+2)) was chosen over a true line search
// because evaluating trial stepsizes against the Beckmann objective would
// require reading the core's per-origin diff buffers, which are
// intentionally unexported; MSA is a standard, well-documented stepsize
// rule for this problem class and needs no such access.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"trafficassign/internal/assignment"
	"trafficassign/internal/qp"
	"trafficassign/internal/shortestpath"
	"trafficassign/pkg/config"
	"trafficassign/pkg/logger"
	"trafficassign/pkg/metrics"
	"trafficassign/pkg/telemetry"
)

func main() {
	if err := run(); err != nil {
		logger.Error("assignd run failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.InitWithConfig(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	runID := uuid.NewString()
	log := logger.WithRunID(runID)

	var rec *metrics.Metrics
	if cfg.Metrics.Enabled {
		rec = metrics.InitMetrics(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
	}

	ctx := context.Background()
	provider, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Version:     cfg.App.Version,
		Environment: cfg.App.Environment,
		SampleRate:  cfg.Tracing.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer provider.Shutdown(ctx)

	ctx, span := telemetry.StartSpan(ctx, "assignd.run")
	defer span.End()

	net := buildDemoNetwork()
	telemetry.SetAttributes(ctx, telemetry.NetworkAttributes(len(net.linkIDs), net.numNodes, net.numCentroids)...)

	opts := []assignment.Option{assignment.WithPathsPerOD(cfg.Assignment.PathsPerOD)}
	if rec != nil {
		opts = append(opts, assignment.WithRecorder(rec))
	}

	a, err := assignment.NewAssignment(len(net.linkIDs), net.numNodes, net.numCentroids, opts...)
	if err != nil {
		return fmt.Errorf("new assignment: %w", err)
	}

	for i, id := range net.linkIDs {
		if err := a.AddLink(id, net.t0[i], net.alfa[i], net.beta[i], net.capacity[i], net.from[i], net.to[i]); err != nil {
			return fmt.Errorf("add link %d: %w", id, err)
		}
	}
	for _, d := range net.demands {
		if err := a.InsertOD(d.fromCentroid, d.toNode, d.demand); err != nil {
			return fmt.Errorf("insert od: %w", err)
		}
	}

	engine := shortestpath.New(net.numNodes, toInt32Slice(net.linkIDs), net.from, net.to)
	a.SetEdges(engine)

	if err := a.PerformInitialSolution(); err != nil {
		return fmt.Errorf("initial solution: %w", err)
	}

	if err := runOuterLoop(ctx, log, a, net.numCentroids, cfg.Assignment, rec); err != nil {
		return fmt.Errorf("outer loop: %w", err)
	}

	flows := make([]float64, len(net.linkIDs))
	if err := a.GetLinkFlows(flows); err != nil {
		return fmt.Errorf("get link flows: %w", err)
	}

	log.Info("converged link flows", "flows", flows, "objective", a.GetObjectiveFunction())
	fmt.Printf("run %s converged\n", runID)
	for i, id := range net.linkIDs {
		fmt.Printf("  link %d: flow=%.4f\n", id, flows[i])
	}
	fmt.Printf("objective: %.6f\n", a.GetObjectiveFunction())

	return nil
}

// runOuterLoop alternates per-origin subproblem solves (parallel, via
// errgroup) with a single global MSA stepsize applied across all origins
// (serial, since it is the only phase writing the shared ledger), until
// the Beckmann objective's relative improvement drops below
// RelativeGapTolerance or MaxIterations is reached.
func runOuterLoop(ctx context.Context, log *slog.Logger, a *assignment.Assignment, numCentroids int, cfg config.AssignmentConfig, rec *metrics.Metrics) error {
	prevObjective := a.GetObjectiveFunction()

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		g, _ := errgroup.WithContext(ctx)
		for o := 0; o < numCentroids; o++ {
			origin := o
			g.Go(func() error {
				if err := a.ComputeShortestPaths(origin); err != nil {
					return err
				}
				sp, err := a.GetSubproblemData(origin)
				if err != nil {
					return err
				}
				flows, err := qp.Solve(sp)
				if err != nil {
					return err
				}
				return a.UpdatePathFlowsWithoutLinkFlows(origin, flows)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		alpha := msaStepsize(iter, cfg.StepsizeMin, cfg.StepsizeMax)
		for o := 0; o < numCentroids; o++ {
			if err := a.UpdateLinkFlowsStepsize(o, alpha); err != nil {
				return err
			}
			if err := a.UpdatePathFlowsStepsize(o, alpha); err != nil {
				return err
			}
		}
		a.UpdateAllLinkDerivatives()

		objective := a.GetObjectiveFunction()
		if rec != nil {
			rec.RecordObjective(objective)
			rec.RecordIteration()
		}
		gap := relativeGap(prevObjective, objective)
		telemetry.AddEvent(ctx, "iteration", telemetry.IterationAttributes(iter, objective, gap, alpha)...)
		log.Info("iteration complete", "iteration", iter, "objective", objective, "relative_gap", gap, "stepsize", alpha)

		if gap < cfg.RelativeGapTolerance {
			if rec != nil {
				rec.RecordRun("converged")
			}
			return nil
		}
		prevObjective = objective
	}

	if rec != nil {
		rec.RecordRun("max_iterations")
	}
	return nil
}

// msaStepsize is the method-of-successive-averages rule: 1/(iteration+2)
// gives the initial all-or-nothing solution (iteration -1, conceptually)
// full weight 1 and shrinks monotonically afterward, clamped to the
// configured stepsize bounds.
func msaStepsize(iteration int, min, max float64) float64 {
	alpha := 1.0 / float64(iteration+2)
	if alpha < min {
		alpha = min
	}
	if alpha > max {
		alpha = max
	}
	return alpha
}

func relativeGap(prev, cur float64) float64 {
	if prev == 0 {
		return math.Abs(cur)
	}
	return math.Abs(cur-prev) / math.Abs(prev)
}

func toInt32Slice(ids []int) []int32 {
	out := make([]int32, len(ids))
	for i, id := range ids {
		out[i] = int32(id)
	}
	return out
}
