package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cutoff/knobkit"
	"github.com/cutoff/knobkit/boardfile"
	"github.com/cutoff/knobkit/midimap"
	"github.com/cutoff/knobkit/param"
)

type controlJSON struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Kind    string   `json:"kind"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Step    *float64 `json:"step,omitempty"`
	Unit    string   `json:"unit,omitempty"`
	Scale   string   `json:"scale,omitempty"`
	Options []string `json:"options,omitempty"`
	Default float64  `json:"default"`
	Text    string   `json:"text"`
	MIDI    string   `json:"midi,omitempty"`
	MaxText string   `json:"max_text"`
}

func main() {
	var (
		filePath = flag.String("file", "", "board yaml to describe (defaults to the built-in demo board)")
		asJSON   = flag.Bool("json", false, "emit JSON instead of the table")
	)
	flag.Parse()

	file := boardfile.DefaultFile()
	if *filePath != "" {
		f, err := boardfile.Load(*filePath)
		if err != nil {
			log.Fatal(err)
		}
		file = f
	}
	board, mapper, err := file.Build()
	if err != nil {
		log.Fatal(err)
	}

	// Widget types live in the file, not on the built board.
	types := make(map[string]string, len(file.Controls))
	for _, c := range file.Controls {
		t := c.Type
		if t == "" {
			t = "knob"
		}
		types[c.ID] = t
	}

	if *asJSON {
		printJSON(board, mapper, types)
		return
	}
	printTable(board, mapper, types)
}

func printTable(board *knobkit.Board, mapper *midimap.Mapper, types map[string]string) {
	fmt.Printf("board: %s (%d controls)\n\n", board.Name(), len(board.Controls()))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tRANGE\tDEFAULT\tTEXT\tMIDI\tMAX TEXT")
	for _, c := range board.Controls() {
		midi := midiOf(mapper, c)
		if midi == "" {
			midi = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%s\t%s\t%s\n",
			c.ID(), types[c.ID()], rangeOf(c.Def()), param.DefaultOf(c.Def()),
			c.Text(), midi, c.MaxText(true))
	}
	w.Flush()
}

func printJSON(board *knobkit.Board, mapper *midimap.Mapper, types map[string]string) {
	out := struct {
		Board    string        `json:"board"`
		Controls []controlJSON `json:"controls"`
	}{Board: board.Name()}
	for _, c := range board.Controls() {
		cj := controlJSON{
			ID:      c.ID(),
			Name:    c.Name(),
			Type:    types[c.ID()],
			Kind:    param.KindOf(c.Def()),
			Default: param.DefaultOf(c.Def()),
			Text:    c.Text(),
			MIDI:    midiOf(mapper, c),
			MaxText: c.MaxText(true),
		}
		switch p := c.Def().(type) {
		case param.Continuous:
			minV, maxV, step := p.Min, p.Max, p.Step
			cj.Min, cj.Max, cj.Step = &minV, &maxV, &step
			cj.Unit = p.Unit
			cj.Scale = param.ScaleName(p.Scale)
		case param.Selector:
			for _, o := range p.Options {
				cj.Options = append(cj.Options, o.Label)
			}
		}
		out.Controls = append(out.Controls, cj)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal(err)
	}
}

func rangeOf(d param.Def) string {
	switch p := d.(type) {
	case param.Continuous:
		s := fmt.Sprintf("%g..%g%s", p.Min, p.Max, p.Unit)
		if p.Step > 0 {
			s += fmt.Sprintf(" step %g", p.Step)
		}
		if name := param.ScaleName(p.Scale); name != "linear" {
			s += " " + name
		}
		return s
	case param.Switch:
		on, off := p.OnLabel, p.OffLabel
		if on == "" {
			on = "On"
		}
		if off == "" {
			off = "Off"
		}
		s := off + "/" + on
		if p.Momentary {
			s += " (momentary)"
		}
		return s
	case param.Selector:
		labels := make([]string, len(p.Options))
		for i, o := range p.Options {
			labels[i] = o.Label
		}
		return strings.Join(labels, "|")
	}
	return ""
}

func midiOf(mapper *midimap.Mapper, c *knobkit.Control) string {
	b, ok := mapper.BindingOf(c)
	if !ok {
		return ""
	}
	if b.Wide {
		return fmt.Sprintf("ch%d cc%d/%d", b.Channel+1, b.CC, b.CC+32)
	}
	return fmt.Sprintf("ch%d cc%d", b.Channel+1, b.CC)
}
