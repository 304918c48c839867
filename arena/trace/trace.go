package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DefaultAlign is applied when an alloc or zalloc line omits the alignment.
const DefaultAlign = 8

// Kind identifies one trace operation.
type Kind uint8

const (
	KindAlloc Kind = iota + 1
	KindZalloc
	KindRealloc
	KindFree
)

// String returns the trace keyword for the kind.
func (k Kind) String() string {
	switch k {
	case KindAlloc:
		return "alloc"
	case KindZalloc:
		return "zalloc"
	case KindRealloc:
		return "realloc"
	case KindFree:
		return "free"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Op is one parsed trace operation.
type Op struct {
	Kind  Kind
	Name  string // block name
	Size  int    // bytes; unused for free
	Align int    // power of two; unused for realloc and free
	Line  int    // 1-based source line, for error reporting
}

// Parse reads a trace from r.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		op, err := parseLine(text, line)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("trace: read: %w", err)
	}
	return ops, nil
}

// ParseFile reads a trace from the file at path.
func ParseFile(path string) ([]Op, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func parseLine(text string, line int) (Op, error) {
	fields := strings.Fields(text)
	op := Op{Line: line}

	switch fields[0] {
	case "alloc", "zalloc":
		op.Kind = KindAlloc
		if fields[0] == "zalloc" {
			op.Kind = KindZalloc
		}
		if len(fields) < 3 || len(fields) > 4 {
			return Op{}, fmt.Errorf("trace: line %d: want %q NAME SIZE [ALIGN]", line, fields[0])
		}
		op.Name = fields[1]
		size, err := parseInt(fields[2], "size", line)
		if err != nil {
			return Op{}, err
		}
		op.Size = size
		op.Align = DefaultAlign
		if len(fields) == 4 {
			a, err := parseInt(fields[3], "align", line)
			if err != nil {
				return Op{}, err
			}
			op.Align = a
		}

	case "realloc":
		if len(fields) != 3 {
			return Op{}, fmt.Errorf("trace: line %d: want \"realloc\" NAME SIZE", line)
		}
		op.Kind = KindRealloc
		op.Name = fields[1]
		size, err := parseInt(fields[2], "size", line)
		if err != nil {
			return Op{}, err
		}
		op.Size = size

	case "free":
		if len(fields) != 2 {
			return Op{}, fmt.Errorf("trace: line %d: want \"free\" NAME", line)
		}
		op.Kind = KindFree
		op.Name = fields[1]

	default:
		return Op{}, fmt.Errorf("trace: line %d: unknown operation %q", line, fields[0])
	}
	return op, nil
}

func parseInt(s, what string, line int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("trace: line %d: bad %s %q", line, what, s)
	}
	return n, nil
}
