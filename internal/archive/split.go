// Package archive reads hand history files holding many hands and parses
// them in bulk.
package archive

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"regexp"
	"strings"
)

// Separator lines some rooms print between exported hands, e.g.
// "*********** # 2 **************".
var separatorRe = regexp.MustCompile(`^\*{3,} # \d+ \*{3,}$`)

const maxLine = 1 << 20

// Input is one hand's text and where it came from.
type Input struct {
	File  string
	Index int // 1-based position within File
	Text  string
}

func (in Input) String() string {
	if in.File == "" {
		return fmt.Sprintf("hand %d", in.Index)
	}
	return fmt.Sprintf("%s#%d", in.File, in.Index)
}

// Split cuts an archive into hand texts. Hands are separated by blank lines
// or separator banners.
func Split(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		hands []string
		cur   strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			hands = append(hands, cur.String())
			cur.Reset()
		}
	}
	for first := true; sc.Scan(); first = false {
		line := strings.TrimRight(sc.Text(), "\r")
		if first {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || separatorRe.MatchString(trimmed) {
			flush()
			continue
		}
		cur.WriteString(line)
		cur.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("split archive: %w", err)
	}
	flush()
	return hands, nil
}

// ReadFS splits every file in fsys matching pattern, in lexical file order.
func ReadFS(fsys fs.FS, pattern string) ([]Input, error) {
	files, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	var inputs []Input
	for _, name := range files {
		hands, err := readFile(fsys, name)
		if err != nil {
			return nil, err
		}
		for i, text := range hands {
			inputs = append(inputs, Input{File: name, Index: i + 1, Text: text})
		}
	}
	return inputs, nil
}

func readFile(fsys fs.FS, name string) ([]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	hands, err := Split(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return hands, nil
}

// Inputs wraps hand texts that did not come from a file.
func Inputs(texts ...string) []Input {
	inputs := make([]Input, len(texts))
	for i, text := range texts {
		inputs[i] = Input{Index: i + 1, Text: text}
	}
	return inputs
}
