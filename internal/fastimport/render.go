package fastimport

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// WriteTo writes the commit as a fast-import stream, terminated by "done".
// Author and committer are resolved from the Identity at write time.
func (c Commit) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: bufio.NewWriter(w)}

	author, committer := c.identity.Resolve()

	fmt.Fprintf(cw, "commit %s\n", c.ref)
	fmt.Fprintf(cw, "author %s<%s> %s\n", nameField(author.Name), author.Email, author.When)
	fmt.Fprintf(cw, "committer %s<%s> %s\n", nameField(committer.Name), committer.Email, committer.When)
	fmt.Fprintf(cw, "data %d\n%s\n", len(c.message), c.message)

	if c.parent != "" {
		fmt.Fprintf(cw, "from %s\n", c.parent)
	}

	if c.deleteAll {
		fmt.Fprint(cw, "deleteall\n")
	} else {
		for _, path := range c.deletes {
			fmt.Fprintf(cw, "D %s\n", quotePath(path))
		}
	}

	for _, f := range c.files {
		fmt.Fprintf(cw, "M %06o inline %s\n", uint32(f.Mode), quotePath(f.Path))
		fmt.Fprintf(cw, "data %d\n", len(f.Data))
		cw.Write(f.Data)
		fmt.Fprint(cw, "\n")
	}

	fmt.Fprint(cw, "done\n")

	if cw.err != nil {
		return cw.n, cw.err
	}
	if err := cw.w.Flush(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// Render returns the fast-import stream for the commit.
func (c Commit) Render() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// quotePath writes paths that fast-import would misread (a leading quote or an
// embedded newline) in C-style quoted form.
func quotePath(path string) string {
	if !strings.HasPrefix(path, `"`) && !strings.Contains(path, "\n") {
		return path
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(path) + `"`
}

func nameField(name string) string {
	if name == "" {
		return ""
	}
	return name + " "
}

// countingWriter remembers the first write error so the stream can be written
// without checking every line.
type countingWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	cw.err = err
	return n, err
}
