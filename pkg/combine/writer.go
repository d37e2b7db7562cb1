package combine

import (
	"fmt"
	"io"
)

// Sink serializes file records. Begin is called once before the first record
// and End once after the last one.
type Sink interface {
	Begin() error
	Write(rec FileRecord) error
	End() error
}

// NewSink returns the sink writing format to w.
func NewSink(format Format, w io.Writer) Sink {
	if format == FormatXML {
		return NewXMLSink(w)
	}
	return NewPlainSink(w)
}

// PlainSink writes each record as "path\n---\ncontent\n---\n" with no wrapper.
type PlainSink struct {
	w io.Writer
}

// NewPlainSink returns a PlainSink writing to w.
func NewPlainSink(w io.Writer) *PlainSink {
	return &PlainSink{w: w}
}

func (s *PlainSink) Begin() error { return nil }

func (s *PlainSink) Write(rec FileRecord) error {
	_, err := fmt.Fprintf(s.w, "%s\n---\n%s\n---\n", rec.Path, rec.Content)
	return err
}

func (s *PlainSink) End() error { return nil }

// XMLSink writes records as numbered <document> blocks inside one
// <documents> element. Paths and contents are written verbatim.
type XMLSink struct {
	w    io.Writer
	next int // index of the next document, starting at 1
}

// NewXMLSink returns an XMLSink writing to w.
func NewXMLSink(w io.Writer) *XMLSink {
	return &XMLSink{w: w, next: 1}
}

func (s *XMLSink) Begin() error {
	_, err := io.WriteString(s.w, "<documents>\n")
	return err
}

func (s *XMLSink) Write(rec FileRecord) error {
	_, err := fmt.Fprintf(s.w,
		"<document index=\"%d\">\n<source>%s</source>\n<document_content>\n%s\n</document_content>\n</document>\n",
		s.next, rec.Path, rec.Content)
	if err != nil {
		return err
	}
	s.next++
	return nil
}

func (s *XMLSink) End() error {
	_, err := io.WriteString(s.w, "</documents>\n")
	return err
}
