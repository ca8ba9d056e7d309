package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/flowdeck/internal/export"
	"github.com/sadopc/flowdeck/internal/store"
	"github.com/sadopc/flowdeck/internal/tui"
)

var CLI struct {
	DB string `help:"Database file path." type:"path"`

	Tui    TuiCmd    `cmd:"" default:"1" help:"Launch the interactive board."`
	Export ExportCmd `cmd:"" help:"Export archived days to a file."`
}

type Context struct {
	Store *store.Store
}

type TuiCmd struct{}

func (c *TuiCmd) Run(appCtx *Context) error {
	app, err := tui.NewApp(appCtx.Store)
	if err != nil {
		return err
	}
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

type ExportCmd struct {
	Format string `help:"Export format." enum:"csv,json" default:"csv"`
	Out    string `help:"Output path." type:"path"`
}

func (c *ExportCmd) Run(appCtx *Context) error {
	logs, err := appCtx.Store.LoadAllDayLogs()
	if err != nil {
		return err
	}

	path := c.Out
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = filepath.Join(home, fmt.Sprintf("flowdeck-export-%s.%s",
			time.Now().Format("2006-01-02"), c.Format))
	}

	if c.Format == "json" {
		err = export.ToJSON(logs, path)
	} else {
		err = export.ToCSV(logs, path)
	}
	if err != nil {
		return err
	}

	fmt.Println("Exported to " + path)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("flowdeck"),
		kong.Description("Task board with flow modes, a pomodoro timer, and daily reviews"),
		kong.UsageOnError(),
	)

	dbPath := CLI.DB
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	if err := ctx.Run(&Context{Store: s}); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
