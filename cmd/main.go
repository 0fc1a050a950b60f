package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"employee-app/internal/domain"
	"employee-app/internal/logger"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

type Globals struct {
	Config   string `help:"Path to a YAML config file." type:"path"`
	EnvFile  string `help:"Path to a .env file." default:".env"`
	LogLevel string `help:"Log level (debug, info, warn, error)."`
}

type CLI struct {
	Globals

	Menu     MenuCmd     `cmd:"" default:"1" help:"Run the interactive employee menu."`
	Telegram TelegramCmd `cmd:"" help:"Serve the employee menu over a Telegram chat."`
	Init     InitCmd     `cmd:"" help:"Create the database and the employees table if missing."`
	Export   ExportCmd   `cmd:"" help:"Export all employees to an Excel workbook."`
}

func newParser(cli *CLI, ctx context.Context) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("employee-app"),
		kong.Description("Console manager for employee records."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx := context.Background()
	defer logger.Close()

	var cli CLI
	parser, err := newParser(&cli, ctx)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	if err := kctx.Run(&cli.Globals); err != nil {
		if domain.IsSchemaError(err) {
			reportStartupError(os.Stdout, err)
			return 1
		}
		logger.ErrorLog(ctx, err, "command failed")
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func reportStartupError(w io.Writer, err error) {
	fmt.Fprintln(w, "Startup error: "+err.Error())
	fmt.Fprintln(w, "Tip: Ensure the database server is running and the credentials in your configuration are correct.")
}
