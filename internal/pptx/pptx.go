// Package pptx writes PresentationML (.pptx) documents directly as OOXML
// zip packages. It implements only what a figure deck needs: blank-layout
// slides carrying text boxes and stretched pictures.
package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/gaitlab/stridedeck/internal/deck"
	"github.com/gaitlab/stridedeck/internal/layout"
)

// mediaExtensions maps image.DecodeConfig format names to the media part
// extensions declared in [Content_Types].xml.
var mediaExtensions = map[string]string{
	"png":  "png",
	"jpeg": "jpeg",
	"gif":  "gif",
}

// Presentation accumulates slides in memory and writes the complete
// package on Save.
type Presentation struct {
	title  string
	width  float64
	height float64
	slides []*slide
}

// New returns an empty presentation on the given canvas. The title goes
// into the document core properties, not onto any slide.
func New(title string, g layout.Geometry) *Presentation {
	return &Presentation{title: title, width: g.CanvasWidth, height: g.CanvasHeight}
}

// AddSlide appends a blank slide and returns it.
func (p *Presentation) AddSlide() deck.Slide {
	s := &slide{}
	p.slides = append(p.slides, s)
	return s
}

// Save writes the .pptx package to path. A half-written file is removed on
// failure so a bad run never leaves a corrupt document behind.
func (p *Presentation) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := p.write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (p *Presentation) write(w io.Writer) error {
	zw := zip.NewWriter(w)
	if err := p.writeParts(zw); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}

func (p *Presentation) writeParts(zw *zip.Writer) error {
	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", p.contentTypes()},
		{"_rels/.rels", rootRels},
		{"docProps/core.xml", p.coreProps()},
		{"docProps/app.xml", p.appProps()},
		{"ppt/presentation.xml", p.presentationXML()},
		{"ppt/_rels/presentation.xml.rels", p.presentationRels()},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRels},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRels},
		{"ppt/theme/theme1.xml", themeXML},
	}
	for _, part := range parts {
		if err := addPart(zw, part.name, []byte(part.content)); err != nil {
			return err
		}
	}

	media := 0
	for i, s := range p.slides {
		names := make([]string, len(s.pics))
		for j, pic := range s.pics {
			media++
			names[j] = fmt.Sprintf("image%d.%s", media, pic.ext)
			if err := addPart(zw, "ppt/media/"+names[j], pic.data); err != nil {
				return err
			}
		}
		if err := addPart(zw, fmt.Sprintf("ppt/slides/slide%d.xml", i+1), []byte(s.xml())); err != nil {
			return err
		}
		rels := fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1)
		if err := addPart(zw, rels, []byte(slideRels(names))); err != nil {
			return err
		}
	}
	return nil
}

func addPart(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create part %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write part %s: %w", name, err)
	}
	return nil
}

// slide holds shapes in z-order. Pictures are tracked separately as well
// because each one becomes a media part and a relationship entry.
type slide struct {
	shapes []shape
	pics   []*picture
}

// AddTextBox places a text frame. Newlines in text split into paragraphs.
func (s *slide) AddTextBox(box layout.Box, text string, style deck.TextStyle) {
	s.shapes = append(s.shapes, &textBox{box: box, text: text, style: style})
}

// AddPicture embeds the image file at the given position with the given
// height in inches. The width follows from the pixel aspect ratio, the way
// a height-only insertion behaves in slide editors.
func (s *slide) AddPicture(path string, left, top, height float64) (deck.Picture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	ext, ok := mediaExtensions[format]
	if !ok {
		return nil, fmt.Errorf("unsupported image format %q in %s", format, path)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("image %s has no pixels", path)
	}

	pic := &picture{
		data:   data,
		ext:    ext,
		left:   left,
		top:    top,
		width:  height * float64(cfg.Width) / float64(cfg.Height),
		height: height,
		relID:  2 + len(s.pics),
	}
	s.pics = append(s.pics, pic)
	s.shapes = append(s.shapes, pic)
	return pic, nil
}

type textBox struct {
	box   layout.Box
	text  string
	style deck.TextStyle
}

// picture keeps the raw bytes until Save. relID is the slide-local
// relationship id the blip references; rId1 is always the layout.
type picture struct {
	data          []byte
	ext           string
	left, top     float64
	width, height float64
	relID         int
}

func (p *picture) Width() float64 { return p.width }

func (p *picture) SetLeft(left float64) { p.left = left }
