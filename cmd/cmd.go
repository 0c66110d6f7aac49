package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/thiagokokada/linelog-go/internal/annotate"
	"github.com/thiagokokada/linelog-go/internal/buildinfo"
	"github.com/thiagokokada/linelog-go/internal/cli"
)

func Run() error {
	return run(os.Args[1:])
}

func run(args []string) error {
	fs := flag.NewFlagSet("linelog-go", flag.ContinueOnError)
	rev := fs.Int("rev", -1, "revision to check out (default: the latest)")
	from := fs.Int("from", -1, "window start revision; also shows lines deleted inside the window")
	plain := fs.Bool("plain", false, "print the text without the revision gutter")
	noSyntax := fs.Bool("nosyntax", false, "disable syntax highlighting")
	mode := fs.String("mode", annotate.ThemeAuto.String(), "color mode: auto, light, or dark")
	watchFlag := fs.Bool("watch", false, "after ingesting history, record live saves until interrupted")
	limit := fs.Int("limit", 0, "ingest only the most recent N commits (0 = all)")
	verbose := fs.Bool("verbose", false, "enable verbose logging")
	showVersion := fs.Bool("version", false, "print version information and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: linelog-go [flags] <file>\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if *showVersion {
		fmt.Println(buildinfo.VersionWithTags())
		return nil
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected one file argument, got %d", fs.NArg())
	}
	return cli.Run(cli.Config{
		Path:    fs.Arg(0),
		Rev:     *rev,
		From:    *from,
		Plain:   *plain,
		Syntax:  !*noSyntax,
		Theme:   annotate.ThemePreferenceFromString(*mode),
		Watch:   *watchFlag,
		Limit:   *limit,
		Verbose: *verbose,
	})
}
