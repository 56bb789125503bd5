// Command arcctl queries a running Arc Defender API and prints the results
// as tables.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
)

const usage = `usage: arcctl [-server URL] [-token TOKEN] <command>

commands:
  overview     threat counts by severity
  origins      top source IPs
  trends       threat counts per minute
  efficiency   detection efficiency
  threats      latest threats
  alerts       latest alerts
  status       current metrics and component status
  login        -email EMAIL -password PASSWORD, prints a bearer token
  me           account behind -token
`

func main() {
	fs := flag.NewFlagSet("arcctl", flag.ExitOnError)
	server := fs.String("server", envOr("ARC_SERVER", "http://localhost:5000"), "API base URL")
	tok := fs.String("token", os.Getenv("ARC_TOKEN"), "bearer token")
	noColor := fs.Bool("no-color", false, "disable colored output")
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	fs.Parse(os.Args[1:])

	if *noColor {
		color.NoColor = true
	}
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := newAPIClient(*server, *tok)
	if err := run(ctx, client, os.Stdout, fs.Arg(0), fs.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", colorRed("error:"), err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *apiClient, w io.Writer, cmd string, args []string) error {
	switch cmd {
	case "overview":
		o, err := c.Overview(ctx)
		if err != nil {
			return err
		}
		renderOverview(w, o)
	case "origins":
		o, err := c.Origins(ctx)
		if err != nil {
			return err
		}
		renderOrigins(w, o)
	case "trends":
		t, err := c.Trends(ctx)
		if err != nil {
			return err
		}
		renderTrends(w, t)
	case "efficiency":
		e, err := c.Efficiency(ctx)
		if err != nil {
			return err
		}
		renderEfficiency(w, e)
	case "threats":
		t, err := c.Threats(ctx)
		if err != nil {
			return err
		}
		renderThreats(w, t)
	case "alerts":
		a, err := c.Alerts(ctx)
		if err != nil {
			return err
		}
		renderAlerts(w, a)
	case "status":
		s, err := c.Summary(ctx)
		if err != nil {
			return err
		}
		renderStatus(w, s)
	case "me":
		me, err := c.Me(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s <%s>\n", colorBold(me.Name), me.Email)
	case "login":
		fs := flag.NewFlagSet("login", flag.ContinueOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		if err := fs.Parse(args); err != nil {
			return err
		}
		resp, err := c.Login(ctx, *email, *password)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, resp.Token)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
