package weights

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"tabula/pkg/errs"
)

const (
	rootElement = "attributeweights"
	// FormatVersion is written into the root element of saved files.
	FormatVersion = "1.0"
	// CompressedSuffix marks weight files stored zstd compressed.
	CompressedSuffix = ".zst"
)

type weightsDocument struct {
	XMLName xml.Name        `xml:"attributeweights"`
	Version string          `xml:"version,attr"`
	Weights []weightElement `xml:"weight"`
}

type weightElement struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// Write stores the weights as an XML document with one weight element per line.
func (w *AttributeWeights) Write(out io.Writer) error {
	writer := bufio.NewWriter(out)
	fmt.Fprintln(writer, xml.Header[:len(xml.Header)-1])
	fmt.Fprintf(writer, "<%s version=\"%s\">\n", rootElement, FormatVersion)
	for _, e := range w.entries {
		fmt.Fprintf(writer, "    <weight name=\"%s\" value=\"%s\"/>\n",
			escape(e.Name), strconv.FormatFloat(e.Weight, 'g', -1, 64))
	}
	fmt.Fprintf(writer, "</%s>\n", rootElement)
	return errors.Wrap(writer.Flush(), "error writing attribute weights")
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// Read parses a document written by Write. A wrong root element or version, malformed XML
// or a weight value that is not a number yield an error wrapping errs.ErrMalformedInput.
func Read(in io.Reader) (*AttributeWeights, error) {
	decoder := xml.NewDecoder(in)
	var doc weightsDocument
	if err := decoder.Decode(&doc); err != nil {
		if _, ok := err.(xml.UnmarshalError); ok {
			return nil, errs.Malformed("unexpected root element, expected <%s>: %s", rootElement, err)
		}
		return nil, errs.Malformed("cannot parse attribute weights: %s", err)
	}
	if doc.Version != FormatVersion {
		return nil, errs.Malformed("unsupported attribute weights version %q, expected %q", doc.Version, FormatVersion)
	}
	w := New()
	for _, element := range doc.Weights {
		value, err := strconv.ParseFloat(strings.TrimSpace(element.Value), 64)
		if err != nil {
			return nil, errs.Malformed("weight of attribute %s is not a number: %q", element.Name, element.Value)
		}
		w.SetWeight(element.Name, value)
	}
	return w, nil
}

// Save writes the weights to path, zstd compressed if the path ends in ".zst".
func (w *AttributeWeights) Save(path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "error creating weights file %s", path)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = errors.Wrapf(closeErr, "error closing weights file %s", path)
		}
	}()

	if !strings.HasSuffix(path, CompressedSuffix) {
		return w.Write(file)
	}
	encoder, err := zstd.NewWriter(file)
	if err != nil {
		return errors.Wrap(err, "error creating zstd encoder")
	}
	if err := w.Write(encoder); err != nil {
		encoder.Close()
		return err
	}
	return errors.Wrap(encoder.Close(), "error compressing attribute weights")
}

// Load reads a weights file written by Save.
func Load(path string) (*AttributeWeights, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening weights file %s", path)
	}
	defer file.Close()

	if !strings.HasSuffix(path, CompressedSuffix) {
		return Read(file)
	}
	decoder, err := zstd.NewReader(file)
	if err != nil {
		return nil, errors.Wrap(err, "error creating zstd decoder")
	}
	defer decoder.Close()
	return Read(decoder)
}
