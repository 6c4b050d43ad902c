package main

import (
	"context"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"rtrsv/internal/host"
	"rtrsv/internal/job"
	"rtrsv/internal/rsv"
)

var demoPhase time.Duration

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run two periodic tasks on a simulated host.",
	Long: `demo registers task 100 (2ms every 10ms) and task 101 (1ms every 5ms) on an ` +
		`in-memory host, runs both as periodic jobs, cancels 101 and finally kills 100 ` +
		`so its reservation is torn down by the termination path.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger()

		sim := host.NewSim(1)
		sim.Spawn(100, 101)
		m := rsv.New(cfg, sim, sim, rsv.WithLogger(log))
		m.Start(cmd.Context())

		drained, err := startJournal(cfg, m, log)
		if err != nil {
			m.Close()
			return err
		}
		atexit.Register(func() {
			m.Close()
			<-drained
		})

		specs := []struct {
			id             rsv.TaskID
			budget, period time.Duration
		}{
			{100, 2 * time.Millisecond, 10 * time.Millisecond},
			{101, 1 * time.Millisecond, 5 * time.Millisecond},
		}

		var wg sync.WaitGroup
		for _, s := range specs {
			task := m.Task(s.id)
			if err := task.Reserve(s.budget, s.period); err != nil {
				return err
			}
			prio, _ := sim.Priority(s.id)
			log.Info("reserved", "task", s.id, "priority", prio)

			wg.Add(1)
			go func(task *rsv.Task, budget time.Duration) {
				defer wg.Done()
				st, err := job.Periodic(context.Background(), task, job.SleepWork(budget))
				log.Info("job finished", "task", task.ID(), "jobs", st.Jobs, "interrupted", st.Interrupted, "err", err)
			}(task, s.budget)
		}

		time.Sleep(demoPhase)
		if err := m.Cancel(101); err != nil {
			return err
		}
		prio, _ := sim.Priority(100)
		log.Info("task 101 cancelled", "priority_100", prio)

		time.Sleep(demoPhase)
		sim.Kill(100)

		wg.Wait()
		log.Info("demo done", "reservations", m.Len())
		return nil
	},
}

func init() {
	demoCmd.Flags().DurationVar(&demoPhase, "phase", 200*time.Millisecond, "time between demo steps")
}
