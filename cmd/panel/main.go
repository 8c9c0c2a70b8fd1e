// Command panel is a terminal front end for the personalized
// recommendations panel. It fetches suggestions from a linkwise server and
// lets you turn them into links or dismiss them.
package main

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/altkan/linkwise/internal"
	"github.com/altkan/linkwise/internal/logger"
	"github.com/altkan/linkwise/internal/panel"
	"github.com/altkan/linkwise/internal/recsvc"
)

// stdoutNotifier prints toast-style outcome lines.
type stdoutNotifier struct{}

func (stdoutNotifier) Success(msg string) { fmt.Println("  ✔ " + msg) }
func (stdoutNotifier) Error(msg string)   { fmt.Println("  ✘ " + msg) }

func main() {
	// Quiet by default so log lines don't interleave with the panel.
	logger.Setup("warn")

	serverURL := cmp.Or(os.Getenv("LINKWISE_URL"), "http://localhost:8080")
	creds := cmp.Or(os.Getenv("LINKWISE_CREDENTIALS"), "admin:admin")
	username, password, _ := strings.Cut(creds, ":")

	client := recsvc.NewClient(serverURL, username, password)
	p := panel.New(client, stdoutNotifier{})
	p.SetOnLinkCreated(func(l internal.Link) {
		fmt.Printf("  new link ready: %s/%s\n", serverURL, l.Slug)
	})

	ctx := context.Background()

	fmt.Println("linkwise panel — connected to " + serverURL)
	p.Refresh(ctx)
	render(p)

	fmt.Println("commands: a <n> accept, d <n> dismiss, r refresh, q quit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")

		switch cmd {
		case "q", "quit", "exit":
			return
		case "r", "refresh":
			p.Refresh(ctx)
		case "a", "accept":
			if id, ok := pickID(p, arg); ok {
				p.Accept(ctx, id)
			}
		case "d", "dismiss":
			if id, ok := pickID(p, arg); ok {
				p.Dismiss(ctx, id)
			}
		case "":
		default:
			fmt.Println("  unknown command:", cmd)
			continue
		}
		render(p)
	}
}

// pickID resolves a 1-based list position to a recommendation id.
func pickID(p *panel.Panel, arg string) (string, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Println("  expected an item number, got", strconv.Quote(arg))
		return "", false
	}
	list := p.Recommendations()
	if n < 1 || n > len(list) {
		fmt.Printf("  no item %d, the list has %d\n", n, len(list))
		return "", false
	}
	return list[n-1].ID, true
}

var iconMarks = map[string]string{
	"alert":    "!",
	"clock":    "~",
	"check":    "✓",
	"bell":     "*",
	"trending": "↗",
	"target":   "◎",
	"sparkle":  "✦",
	"idea":     "○",
}

func render(p *panel.Panel) {
	v := p.View()
	fmt.Println()

	switch v.Mode {
	case panel.ModeLoading:
		fmt.Println("Personalized recommendations")
		for i := 0; i < v.Skeleton; i++ {
			fmt.Println("  ░░░░░░░░░░")
		}
	case panel.ModeEmpty:
		fmt.Println("Personalized recommendations (0)")
		fmt.Println("  No recommendations right now. Type r to check again.")
	default:
		fmt.Printf("Personalized recommendations (%d)\n", v.Summary.Total)
		for i, it := range v.Items {
			state := ""
			if it.Processing {
				state = "  [creating…]"
			}
			fmt.Printf("  [%d] %s %s %s (%s priority)%s\n",
				i+1, iconMarks[it.TypeIcon], iconMarks[it.Style.Icon], it.Title, it.Priority, state)
			fmt.Printf("      %s\n", it.Description)
			target := it.TargetURL
			if target == "" {
				target = "(no target url)"
			}
			fmt.Printf("      /%s → %s, expires %s\n",
				it.SuggestedSlug, target, humanizeExpiry(it.ExpiresAt))
		}
		fmt.Printf("  %d total · %d high priority · %d medium · %d low priority\n",
			v.Summary.Total, v.Summary.High, v.Summary.Medium, v.Summary.Low)
	}
	fmt.Println()
}

func humanizeExpiry(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := time.Until(t)
	switch {
	case d <= 0:
		return "now"
	case d < 48*time.Hour:
		return fmt.Sprintf("in %dh", int(d.Hours()))
	default:
		return fmt.Sprintf("in %dd", int(d.Hours()/24))
	}
}
