package stdlib

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/atlas-lang/atlas/internal/native"
	"github.com/atlas-lang/atlas/internal/span"
	"github.com/atlas-lang/atlas/internal/value"
)

// registerIO installs the permission-gated natives (spec §4.8): the
// capability kind tagged on each Entry is what internal/permissions
// checks before Fn ever runs, so these bodies assume access is already
// granted.
func registerIO(reg *native.Registry) {
	reg.Register(&native.Entry{Name: "readFile", Arity: 1, Kind: "fs", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		path, ok := args[0].Data.(string)
		if !ok {
			return value.Null, wrongType("'readFile' requires a string path")
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return value.Err(value.String(err.Error())), nil
		}
		return value.Ok(value.String(string(data))), nil
	}})

	reg.Register(&native.Entry{Name: "writeFile", Arity: 2, Kind: "fs", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		path, ok := args[0].Data.(string)
		if !ok {
			return value.Null, wrongType("'writeFile' requires a string path")
		}
		content, ok := args[1].Data.(string)
		if !ok {
			return value.Null, wrongType("'writeFile' requires string content")
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return value.Err(value.String(err.Error())), nil
		}
		return value.Ok(value.Null), nil
	}})

	reg.Register(&native.Entry{Name: "httpGet", Arity: 1, Kind: "net", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		url, ok := args[0].Data.(string)
		if !ok {
			return value.Null, wrongType("'httpGet' requires a string URL")
		}
		client := &http.Client{Timeout: 10 * time.Second}
		resp, err := client.Get(url)
		if err != nil {
			return value.Err(value.String(err.Error())), nil
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return value.Err(value.String(err.Error())), nil
		}
		return value.Ok(value.String(string(body))), nil
	}})

	reg.Register(&native.Entry{Name: "envGet", Arity: 1, Kind: "env", Fn: func(ctx *native.Context, args []value.Value) (value.Value, *span.Diagnostic) {
		name, ok := args[0].Data.(string)
		if !ok {
			return value.Null, wrongType("'envGet' requires a string name")
		}
		v, found := os.LookupEnv(name)
		if !found {
			return value.None(), nil
		}
		return value.Some(value.String(v)), nil
	}})
}
