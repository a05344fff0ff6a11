package bench

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
)

// CommandAction adapts an external command into an Action. Each round
// starts one child process and waits for it to exit. Because the
// command runs under exec.CommandContext, deadline expiry kills the
// process outright, which gives the supervisor true forced-termination
// semantics even for CPU-bound workloads.
//
// Parameter values from the case's variation are appended to the
// argument list as --name=value flags in sorted name order.
func CommandAction(name string, args ...string) Action {
	return func(ctx context.Context, benchArgs Args) error {
		argv := make([]string, len(args), len(args)+len(benchArgs))
		copy(argv, args)
		for _, k := range orderedArgKeys(benchArgs) {
			argv = append(argv, fmt.Sprintf("--%s=%v", k, benchArgs[k]))
		}

		cmd := exec.CommandContext(ctx, name, argv...)
		var out bytes.Buffer
		cmd.Stdout = &out
		cmd.Stderr = &out
		if err := cmd.Run(); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("command %s failed: %w\noutput:\n%s", name, err, out.String())
		}
		return nil
	}
}

func orderedArgKeys(args Args) []string {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
