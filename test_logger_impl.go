package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/myexample/reft-contract-tests/framework"

	"github.com/fatih/color"
)

type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Printf("[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Printf("  %s\n", color.RedString(line))
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, elapsed time.Duration, debugOutput framework.CapturedOutput) {
	if failed {
		fmt.Printf("  %s %s (%s)\n", color.RedString("FAILED:"), id, elapsed)
	} else {
		fmt.Printf("  %s %s (%s)\n", color.GreenString("PASSED:"), id, elapsed)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(os.Stdout, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		fmt.Printf("  %s %s\n", color.YellowString("SKIPPED:"), id)
	} else {
		fmt.Printf("  %s %s (%s)\n", color.YellowString("SKIPPED:"), id, reason)
	}
}

func printResults(results framework.Results) {
	if results.OK() {
		color.Green("All tests passed")
		return
	}
	color.Red("FAILED TESTS (%d):", len(results.Failures))
	for _, f := range results.Failures {
		fmt.Printf("  * %s\n", f.TestID)
	}
}

func printRerunCommand(results framework.Results) {
	var ids []framework.TestID
	for _, f := range results.Failures {
		ids = append(ids, f.TestID)
	}
	fmt.Println()
	fmt.Println("To run only the failed tests:")
	fmt.Printf("  %s\n", rerunCommand(os.Args[0], os.Args[1:], ids))
}
