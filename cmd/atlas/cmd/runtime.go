package cmd

import (
	"fmt"
	"os"

	"github.com/atlas-lang/atlas/internal/permissions"
	"github.com/atlas-lang/atlas/internal/span"
	"github.com/atlas-lang/atlas/pkg/atlas"
)

// newRuntime builds a Runtime from the persistent flags shared by run
// and eval.
func newRuntime() *atlas.Runtime {
	opts := []atlas.Option{atlas.WithStdout(os.Stdout), atlas.WithStderr(os.Stderr)}
	if useVM {
		opts = append(opts, atlas.WithEngine(atlas.EngineVM))
	}
	if trustAll {
		opts = append(opts, atlas.WithPermissions(permissions.TrustAll()))
	}
	if maxCallDepth > 0 {
		opts = append(opts, atlas.WithMaxCallDepth(maxCallDepth))
	}
	if configPath != "" {
		opts = append(opts, atlas.WithConfigFile(configPath))
	}
	return atlas.New(opts...)
}

// reportDiagnostics prints diags in the requested --format and returns
// an error if any of them is an error-level diagnostic.
func reportDiagnostics(diags span.List) error {
	if len(diags) == 0 {
		return nil
	}
	switch outputFormat {
	case "json":
		for _, d := range diags {
			data, err := span.RenderJSON(d)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, string(data))
		}
	default:
		fmt.Fprint(os.Stderr, span.RenderHumanList(diags))
	}
	if diags.HasErrors() {
		return fmt.Errorf("%d diagnostic(s)", len(diags))
	}
	return nil
}
