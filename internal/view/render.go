package view

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

const statBarWidth = 20

// RenderText writes a human-readable card for m
func RenderText(w io.Writer, m *Model) error {
	if m == nil {
		return nil
	}

	fmt.Fprintf(w, "%s %s\n", m.Name, m.Number)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if m.Image != nil {
		fmt.Fprintf(tw, "Image\t%s\n", *m.Image)
	}
	if m.HoverImage != nil {
		fmt.Fprintf(tw, "Back\t%s\n", *m.HoverImage)
	}
	fmt.Fprintf(tw, "Types\t%s\n", strings.Join(m.Types, " "))

	fmt.Fprintf(tw, "Height\t%s\n", m.Height)
	fmt.Fprintf(tw, "Weight\t%s\n", m.Weight)
	if m.BaseExperience != nil {
		fmt.Fprintf(tw, "Base Experience\t%d\n", *m.BaseExperience)
	} else {
		fmt.Fprintf(tw, "Base Experience\t-\n")
	}
	fmt.Fprintf(tw, "Abilities\t%s\n", m.Abilities)

	if err := tw.Flush(); err != nil {
		return err
	}

	if len(m.Stats) > 0 {
		fmt.Fprintln(w)
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, s := range m.Stats {
			fmt.Fprintf(tw, "%s\t%3d %s\n", s.Name, s.Value, statBar(s.Value))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if m.Description != "" {
		fmt.Fprintf(w, "\n%s\n", m.Description)
	}

	if len(m.Evolution) > 0 {
		names := make([]string, len(m.Evolution))
		for i, s := range m.Evolution {
			names[i] = s.Name
		}
		fmt.Fprintf(w, "\nEvolution: %s\n", strings.Join(names, " -> "))

		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, s := range m.Evolution {
			image := "-"
			if s.Image != nil {
				image = *s.Image
			}
			fmt.Fprintf(tw, "  %s\t%s\n", s.Name, image)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if m.Matchups != nil {
		fmt.Fprintf(w, "\nMatchups\n")
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "  Weak\t%s\n", joinOrDash(m.Matchups.Weak))
		fmt.Fprintf(tw, "  Resist\t%s\n", joinOrDash(m.Matchups.Resist))
		fmt.Fprintf(tw, "  Immune\t%s\n", joinOrDash(m.Matchups.Immune))
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(m.Moves) > 0 {
		fmt.Fprintf(w, "\nLevel-up moves\n")
		for _, mv := range m.Moves {
			fmt.Fprintf(w, "  Lv. %d %s\n", mv.Level, mv.Name)
		}
	}

	return nil
}

// ErrorResult is the JSON body for a failed search
type ErrorResult struct {
	Error string `json:"error"`
}

// RenderError writes the single user-facing error line
func RenderError(w io.Writer, message string) error {
	_, err := fmt.Fprintln(w, message)
	return err
}

// RenderJSON writes v as indented JSON
func RenderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RenderSuggestions writes one name per line
func RenderSuggestions(w io.Writer, names []string) error {
	for _, name := range names {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

func statBar(value int) string {
	n := value * statBarWidth / 255
	if n < 0 {
		n = 0
	}
	if n > statBarWidth {
		n = statBarWidth
	}
	if n == 0 && value > 0 {
		n = 1
	}
	return strings.Repeat("#", n)
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
