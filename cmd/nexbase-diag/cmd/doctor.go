package cmd

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/spf13/cobra"

	nexbase "github.com/nexbase-io/nexbase-go"
	"github.com/nexbase-io/nexbase-go/clock"
	"github.com/nexbase-io/nexbase-go/diag"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the host and exercise the SDK diagnostics core",
	Long: `Print a snapshot of the host environment, then run the SDK's
diagnostics self-check: marks and measures on the performance timeline and a
simulated outage cycle on the disconnect ledger, all on a controlled clock.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	printHostSnapshot(out)

	fmt.Fprintln(out, "Diagnostics self-check...")
	fmt.Fprintln(out)

	failures := runSelfCheck(out)

	fmt.Fprintln(out)
	if failures > 0 {
		return fmt.Errorf("self-check failed: %d check(s) did not pass", failures)
	}
	fmt.Fprintln(out, "All checks passed.")
	return nil
}

// printHostSnapshot reports host context so outage reports can be read
// against the machine they came from. Every probe is best-effort.
func printHostSnapshot(out io.Writer) {
	fmt.Fprintln(out, "Host environment...")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  os:         %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "  goroutines: %d\n", runtime.NumGoroutine())

	if counts, err := cpu.Counts(true); err == nil {
		fmt.Fprintf(out, "  cpu:        %d logical cores\n", counts)
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		fmt.Fprintf(out, "  memory:     %.1f%% of %.1f GB used\n",
			vm.UsedPercent, float64(vm.Total)/(1024*1024*1024))
	}
	if avg, err := load.Avg(); err == nil {
		fmt.Fprintf(out, "  load:       %.2f %.2f %.2f\n", avg.Load1, avg.Load5, avg.Load15)
	}
	fmt.Fprintln(out)
}

// runSelfCheck exercises the diagnostics core on a manual clock and prints
// one line per check. Returns the number of failed checks.
func runSelfCheck(out io.Writer) int {
	failures := 0
	check := func(name string, ok bool) {
		icon := "✓"
		if !ok {
			icon = "✗"
			failures++
		}
		fmt.Fprintf(out, "  %s %s\n", icon, name)
	}

	clk := clock.NewManual(time.Now())
	client, err := nexbase.NewClient(
		nexbase.WithClock(clk),
		nexbase.WithLogger(logger.Logger),
		nexbase.WithHistoryCapacity(cfg.Diagnostics.DiagConfig().HistoryCapacity),
		nexbase.WithLongDisconnectThreshold(cfg.Diagnostics.DiagConfig().LongDisconnectThreshold),
	)
	check("client construction", err == nil)
	if err != nil {
		return failures
	}

	perf := client.Diagnostics().Performance()
	perf.Mark("selfcheck:start", diag.ObjectValue(map[string]diag.Value{
		"tool": diag.StringValue("nexbase-diag"),
	}))
	clk.Advance(120 * time.Millisecond)
	perf.Mark("selfcheck:end")
	m := perf.Measure("selfcheck", "selfcheck:start", "selfcheck:end")
	check("timeline mark/measure", m.Duration == 120*time.Millisecond)

	ghost := perf.Measure("ghost", "no-such-mark", "still-no-such-mark")
	check("measure fallback never fails", ghost.Duration >= 0)

	led := client.Diagnostics().Disconnects()
	led.RecordDisconnect()
	led.RecordDisconnect() // duplicate signal must be absorbed
	clk.Advance(2 * time.Second)
	led.RecordReconnect()
	led.RecordReconnect() // duplicate signal must be absorbed

	hist := led.History()
	check("outage cycle recorded once", len(hist) == 1)
	check("outage spans first disconnect", len(hist) == 1 && hist[0].Duration() == 2*time.Second)
	check("ledger reconnected", !led.IsDisconnected())

	return failures
}
