package tmx

import "encoding/xml"

// XML shapes of the subset of the TMX format tisu reads.

type xmlMap struct {
	XMLName     xml.Name      `xml:"map"`
	Version     string        `xml:"version,attr"`
	Orientation string        `xml:"orientation,attr"`
	RenderOrder string        `xml:"renderorder,attr"`
	Width       int           `xml:"width,attr"`
	Height      int           `xml:"height,attr"`
	TileWidth   int           `xml:"tilewidth,attr"`
	TileHeight  int           `xml:"tileheight,attr"`
	Infinite    int           `xml:"infinite,attr"`
	Properties  []xmlProperty `xml:"properties>property"`
	Tilesets    []xmlTileset  `xml:"tileset"`
	Layers      []xmlLayer    `xml:",any"`
}

type xmlTileset struct {
	FirstGID   uint32 `xml:"firstgid,attr"`
	Source     string `xml:"source,attr"`
	Name       string `xml:"name,attr"`
	TileWidth  int    `xml:"tilewidth,attr"`
	TileHeight int    `xml:"tileheight,attr"`
	TileCount  int    `xml:"tilecount,attr"`
	Columns    int    `xml:"columns,attr"`
	Image      *struct {
		Source string `xml:"source,attr"`
		Width  int    `xml:"width,attr"`
		Height int    `xml:"height,attr"`
	} `xml:"image"`
}

// xmlLayer is the union of <layer>, <objectgroup> and <group>; XMLName
// tells them apart.
type xmlLayer struct {
	XMLName    xml.Name
	ID         int           `xml:"id,attr"`
	Name       string        `xml:"name,attr"`
	Width      int           `xml:"width,attr"`
	Height     int           `xml:"height,attr"`
	Visible    *int          `xml:"visible,attr"`
	Properties []xmlProperty `xml:"properties>property"`
	Data       *xmlData      `xml:"data"`
	Objects    []xmlObject   `xml:"object"`
	Layers     []xmlLayer    `xml:",any"`
}

func (l xmlLayer) visible() bool { return l.Visible == nil || *l.Visible != 0 }

type xmlData struct {
	Encoding    string       `xml:"encoding,attr"`
	Compression string       `xml:"compression,attr"`
	Text        string       `xml:",chardata"`
	Tiles       []xmlTileGID `xml:"tile"`
	Chunks      []struct{}   `xml:"chunk"`
}

type xmlTileGID struct {
	GID uint32 `xml:"gid,attr"`
}

type xmlObject struct {
	ID         int           `xml:"id,attr"`
	Name       string        `xml:"name,attr"`
	Type       string        `xml:"type,attr"`
	GID        uint32        `xml:"gid,attr"`
	X          float64       `xml:"x,attr"`
	Y          float64       `xml:"y,attr"`
	Width      float64       `xml:"width,attr"`
	Height     float64       `xml:"height,attr"`
	Properties []xmlProperty `xml:"properties>property"`
	Ellipse    *struct{}     `xml:"ellipse"`
	Point      *struct{}     `xml:"point"`
	Polygon    *struct{}     `xml:"polygon"`
	Polyline   *struct{}     `xml:"polyline"`
	Text       *struct{}     `xml:"text"`
}

// isRect reports whether the object is a plain rectangle.
func (o xmlObject) isRect() bool {
	return o.GID == 0 && o.Ellipse == nil && o.Point == nil &&
		o.Polygon == nil && o.Polyline == nil && o.Text == nil
}

type xmlProperty struct {
	Name  string `xml:"name,attr"`
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
	Text  string `xml:",chardata"`
}

func properties(props []xmlProperty) map[string]string {
	if len(props) == 0 {
		return nil
	}
	m := make(map[string]string, len(props))
	for _, p := range props {
		v := p.Value
		if v == "" && p.Text != "" {
			v = p.Text
		}
		m[p.Name] = v
	}
	return m
}

// Output shapes. Attribute order follows what Tiled itself writes.

type outMap struct {
	XMLName      xml.Name   `xml:"map"`
	Version      string     `xml:"version,attr"`
	TiledVersion string     `xml:"tiledversion,attr"`
	Orientation  string     `xml:"orientation,attr"`
	RenderOrder  string     `xml:"renderorder,attr"`
	Width        int        `xml:"width,attr"`
	Height       int        `xml:"height,attr"`
	TileWidth    int        `xml:"tilewidth,attr"`
	TileHeight   int        `xml:"tileheight,attr"`
	Infinite     int        `xml:"infinite,attr"`
	NextLayerID  int        `xml:"nextlayerid,attr"`
	NextObjectID int        `xml:"nextobjectid,attr"`
	Tileset      outTileset `xml:"tileset"`
	Layer        outLayer   `xml:"layer"`
}

type outTileset struct {
	FirstGID int    `xml:"firstgid,attr"`
	Source   string `xml:"source,attr"`
}

type outLayer struct {
	ID     int     `xml:"id,attr"`
	Name   string  `xml:"name,attr"`
	Width  int     `xml:"width,attr"`
	Height int     `xml:"height,attr"`
	Data   outData `xml:"data"`
}

type outData struct {
	Encoding string `xml:"encoding,attr"`
	Text     string `xml:",innerxml"`
}
