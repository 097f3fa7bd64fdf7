// The cast-stat command displays stats for a cast file.
package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/castapi/castfile"
	"github.com/castapi/castfile/bin"
	"golang.org/x/crypto/blake2b"
)

const usage = `usage: cast-stat [INPUT] [OUTPUT]

Reads a cast file from INPUT, and writes to OUTPUT statistics for the file.

INPUT and OUTPUT are paths to files. If INPUT is "-" or unspecified, then stdin
is used. If OUTPUT is "-" or unspecified, then stdout is used. Warnings and
errors are written to stderr.
`

type PropLen struct {
	Kind     string
	Property string
	Type     string
	Length   int
}

func (p PropLen) String() string {
	return fmt.Sprintf("%s.%s:%s(%d)", p.Kind, p.Property, p.Type, p.Length)
}

type PropLenCount map[PropLen]int

func (p PropLenCount) MarshalJSON() ([]byte, error) {
	list := []PropLen{}
	for k := range p {
		list = append(list, k)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Length > list[j].Length
	})
	if len(list) > 20 {
		list = list[:20]
	}
	return json.Marshal(list)
}

type Stats struct {
	// BLAKE2b-256 digest of the input bytes.
	Digest string

	// Number of root nodes.
	RootCount int

	// Number of nodes overall.
	NodeCount int

	// Number of properties overall.
	PropertyCount int

	// Number of nodes per kind.
	KindCount map[string]int

	// Number of properties per type.
	TypeCount map[string]int

	LargestProperties PropLenCount `json:",omitempty"`
}

func (s *Stats) visit(n *castfile.Node) {
	s.NodeCount++
	kind := castfile.KindName(n.Identifier)
	s.KindCount[kind]++
	for _, p := range n.Properties() {
		s.PropertyCount++
		s.TypeCount[p.Value.Type().String()]++
		s.LargestProperties[PropLen{
			Kind:     kind,
			Property: p.Name,
			Type:     p.Value.Type().String(),
			Length:   p.Value.DataSize(),
		}]++
	}
	for _, ch := range n.Children() {
		s.visit(ch)
	}
}

func main() {
	var input io.Reader = os.Stdin
	var output io.Writer = os.Stdout

	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()
	args := flag.Args()
	if len(args) >= 1 && args[0] != "-" {
		in, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("open input: %w", err))
			return
		}
		input = in
		defer in.Close()
	}
	if len(args) >= 2 && args[1] != "-" {
		out, err := os.Create(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("create output: %w", err))
			return
		}
		defer out.Close()
		output = out
	}

	data, err := io.ReadAll(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("read input: %w", err))
		return
	}

	doc, warn, err := bin.Decoder{}.Decode(bytes.NewReader(data))
	if warn != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("warning: %w", warn))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("decode input: %w", err))
		return
	}

	digest := blake2b.Sum256(data)
	stats := Stats{
		Digest:            hex.EncodeToString(digest[:]),
		RootCount:         len(doc.Roots),
		KindCount:         map[string]int{},
		TypeCount:         map[string]int{},
		LargestProperties: PropLenCount{},
	}
	for _, root := range doc.Roots {
		stats.visit(root)
	}

	je := json.NewEncoder(output)
	je.SetIndent("", "\t")
	if err := je.Encode(&stats); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("encode stats: %w", err))
		return
	}
}
