package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"pkg-sandbox/internal/app"
)

type serviceSettings struct {
	SandboxRoot string
	NpmBinary   string
	Timeout     time.Duration
}

// newAppService wires the application service. Without a configured
// sandbox root only the default ./sandbox directory, or paths beneath it,
// can be reset or cleaned.
func newAppService(out io.Writer, settings serviceSettings) app.Service {
	sandboxRoot := strings.TrimSpace(settings.SandboxRoot)
	if sandboxRoot == "" {
		sandboxRoot = strings.TrimSpace(viper.GetString("sandbox_root"))
	}
	if sandboxRoot == "" {
		sandboxRoot = defaultSandboxRoot()
	}
	return app.NewService(app.ServiceConfig{
		SandboxRoot:    sandboxRoot,
		NpmBinary:      settings.NpmBinary,
		InstallTimeout: settings.Timeout,
		DisplayLength:  viper.GetInt("display_length"),
		Progress:       out,
	})
}

func defaultSandboxRoot() string {
	if cwd, err := os.Getwd(); err == nil {
		return filepath.Join(cwd, defaultWorkspace)
	}
	return defaultWorkspace
}
