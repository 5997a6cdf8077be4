package deck

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

// A .pptx file is a zip archive: ppt/presentation.xml declares the page size
// and slide order, ppt/_rels/presentation.xml.rels maps relationship ids to
// slide parts, and each slide part has its own rels file mapping embedded
// picture references to ppt/media/* entries.

type implReader struct{}

func (r *implReader) Open(filePath string) (*Deck, error) {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("open deck %s: %w", filePath, err)
	}
	defer zr.Close()

	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}

	presData, err := readPart(parts, "ppt/presentation.xml")
	if err != nil {
		return nil, fmt.Errorf("not a presentation file: %w", err)
	}

	var pres presentationXML
	if err := xml.Unmarshal(presData, &pres); err != nil {
		return nil, fmt.Errorf("parse presentation.xml: %w", err)
	}

	presRels, err := readRels(parts, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil, err
	}

	d := &Deck{
		PageWidth:  EMU(pres.SlideSize.CX),
		PageHeight: EMU(pres.SlideSize.CY),
	}

	for i, id := range pres.SlideIDs.IDs {
		target, ok := presRels[id.RelID]
		if !ok {
			return nil, fmt.Errorf("slide %d: relationship %s not found", i+1, id.RelID)
		}
		partName := resolveTarget("ppt", target)

		slide, err := readSlide(parts, partName, i+1)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		d.Slides = append(d.Slides, slide)
	}

	return d, nil
}

// readSlide parses one slide part plus its rels file into shape-level detail.
func readSlide(parts map[string]*zip.File, partName string, number int) (Slide, error) {
	data, err := readPart(parts, partName)
	if err != nil {
		return Slide{}, err
	}

	var sld slideXML
	if err := xml.Unmarshal(data, &sld); err != nil {
		return Slide{}, fmt.Errorf("parse %s: %w", partName, err)
	}

	relsName := path.Join(path.Dir(partName), "_rels", path.Base(partName)+".rels")
	rels, err := readRels(parts, relsName)
	if err != nil {
		// A slide with no pictures may legitimately have no rels part.
		rels = map[string]string{}
	}

	slide := Slide{Number: number}
	for _, sh := range sld.Tree.Shapes {
		switch {
		case sh.pic != nil:
			target, ok := rels[sh.pic.BlipFill.Blip.Embed]
			if !ok {
				return Slide{}, fmt.Errorf("picture relationship %s not found", sh.pic.BlipFill.Blip.Embed)
			}
			mediaName := resolveTarget(path.Dir(partName), target)
			blob, err := readPart(parts, mediaName)
			if err != nil {
				return Slide{}, fmt.Errorf("read media %s: %w", mediaName, err)
			}
			slide.Shapes = append(slide.Shapes, Shape{
				Kind:    KindPicture,
				Picture: blob,
				Box:     sh.pic.SpPr.Xfrm.box(),
			})
		case sh.sp != nil && sh.sp.TxBody != nil:
			slide.Shapes = append(slide.Shapes, Shape{
				Kind: KindText,
				Text: sh.sp.TxBody.text(),
				Box:  sh.sp.SpPr.Xfrm.box(),
			})
		default:
			slide.Shapes = append(slide.Shapes, Shape{Kind: KindOther})
		}
	}

	return slide, nil
}

func readPart(parts map[string]*zip.File, name string) ([]byte, error) {
	f, ok := parts[name]
	if !ok {
		return nil, fmt.Errorf("part %s not found", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open part %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read part %s: %w", name, err)
	}
	return data, nil
}

func readRels(parts map[string]*zip.File, name string) (map[string]string, error) {
	data, err := readPart(parts, name)
	if err != nil {
		return nil, err
	}

	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	m := make(map[string]string, len(rels.Relationships))
	for _, rel := range rels.Relationships {
		m[rel.ID] = rel.Target
	}
	return m, nil
}

// resolveTarget turns a relationship target (relative to the part's
// directory, e.g. "../media/image1.png") into a zip entry name.
func resolveTarget(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(baseDir, target))
}

// XML mappings. Tags match by local name so the p:/a:/r: prefixes in the
// document don't matter, except for attributes that collide on local name
// (sldId carries both id and r:id), which are namespace-qualified.

type presentationXML struct {
	SlideIDs  slideIDListXML `xml:"sldIdLst"`
	SlideSize struct {
		CX int64 `xml:"cx,attr"`
		CY int64 `xml:"cy,attr"`
	} `xml:"sldSz"`
}

type slideIDListXML struct {
	IDs []struct {
		RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldId"`
}

type relationshipsXML struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type slideXML struct {
	Tree spTreeXML `xml:"cSld>spTree"`
}

// spTreeXML preserves document order across the mixed sp/pic children,
// which struct-field decoding would lose.
type spTreeXML struct {
	Shapes []shapeNodeXML
}

type shapeNodeXML struct {
	sp  *spXML
	pic *picXML
}

func (t *spTreeXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "sp":
				var sp spXML
				if err := d.DecodeElement(&sp, &el); err != nil {
					return err
				}
				t.Shapes = append(t.Shapes, shapeNodeXML{sp: &sp})
			case "pic":
				var pic picXML
				if err := d.DecodeElement(&pic, &el); err != nil {
					return err
				}
				t.Shapes = append(t.Shapes, shapeNodeXML{pic: &pic})
			case "graphicFrame", "cxnSp", "grpSp":
				// Tables, connectors and groups are not rendered.
				if err := d.Skip(); err != nil {
					return err
				}
				t.Shapes = append(t.Shapes, shapeNodeXML{})
			}
		case xml.EndElement:
			if el.Name == start.Name {
				return nil
			}
		}
	}
}

type spXML struct {
	SpPr   spPrXML    `xml:"spPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

type picXML struct {
	BlipFill struct {
		Blip struct {
			Embed string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships embed,attr"`
		} `xml:"blip"`
	} `xml:"blipFill"`
	SpPr spPrXML `xml:"spPr"`
}

type spPrXML struct {
	Xfrm xfrmXML `xml:"xfrm"`
}

type xfrmXML struct {
	Off struct {
		X int64 `xml:"x,attr"`
		Y int64 `xml:"y,attr"`
	} `xml:"off"`
	Ext struct {
		CX int64 `xml:"cx,attr"`
		CY int64 `xml:"cy,attr"`
	} `xml:"ext"`
}

func (x xfrmXML) box() Box {
	return Box{
		Left:   EMU(x.Off.X),
		Top:    EMU(x.Off.Y),
		Width:  EMU(x.Ext.CX),
		Height: EMU(x.Ext.CY),
	}
}

type txBodyXML struct {
	Paragraphs []struct {
		Runs []struct {
			Text string `xml:"t"`
		} `xml:"r"`
	} `xml:"p"`
}

// text joins run texts within a paragraph and paragraphs with newlines,
// matching how presentation tools expose a shape's plain text.
func (b *txBodyXML) text() string {
	lines := make([]string, 0, len(b.Paragraphs))
	for _, p := range b.Paragraphs {
		var sb strings.Builder
		for _, r := range p.Runs {
			sb.WriteString(r.Text)
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}
