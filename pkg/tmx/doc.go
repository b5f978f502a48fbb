// Package tmx reads and writes Tiled map files.
//
// # Overview
//
// Tiled stores maps as XML (.tmx) that reference tilesets (.tsx). tisu uses
// two kinds of layer from a map:
//
//   - Tile layers become [MapLayer] values holding a grid.Grid[tile.Tile].
//     Layers nested in groups are flattened in document order, and a layer
//     inside a hidden group is itself hidden.
//   - Object layers become [PropertyLayer] values. Each rectangle object is
//     converted from pixels to tiles by dividing by the map tile size, and
//     carries the object's custom properties as strings.
//
// # Layer Data
//
// Tile layer data may be stored as csv, base64 (uncompressed, zlib, gzip or
// zstd) or as plain <tile> elements. Infinite (chunked) maps are rejected
// with INVALID_FORMAT.
//
// # Writing
//
// [Save] writes one orthogonal tile layer in csv encoding, referencing an
// external tileset with first GID 1. The file is written to a temporary path
// in the target directory and renamed into place, so a failed save never
// leaves a partial map behind.
//
//	res, err := tmx.Load("input.tmx")
//	if err != nil {
//	    return err
//	}
//	g := res.MapLayers[0].Grid
//	err = tmx.Save("output.tmx", g, res.TileSize, res.TilesetPath)
package tmx
