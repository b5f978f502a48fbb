// Package io provides JSON import and export for tile grids and rule sets.
//
// # Overview
//
// The JSON formats are used wherever a grid or a decoded rule set leaves the
// process: the rule set cache stores them, the HTTP API accepts and returns
// them, and users can keep them next to their maps for inspection.
//
// Tiles are written as Tiled GIDs: 0 is the empty cell, index n is n+1, and
// the flip flags occupy the top three bits.
//
// # Grid Format
//
//	{
//	  "width": 3,
//	  "height": 2,
//	  "cells": [1, 0, 2, 2, 0, 1]
//	}
//
// Cells are listed in row-major order and must number width*height.
//
// # Rule Set Format
//
//	[
//	  {
//	    "name": "roads",
//	    "visible": true,
//	    "ignore": false,
//	    "rules": [
//	      {
//	        "pattern": [[1, 0]],
//	        "substitute": [[0, 1]],
//	        "wildcard": 0,
//	        "probability": 1,
//	        "mode": "source",
//	        "only_once": false
//	      }
//	    ]
//	  }
//	]
//
// A missing probability defaults to 1 and a missing mode to "source".
//
// # Import and Export
//
// [ReadGrid] and [ReadRuleSets] decode from any io.Reader, and [WriteGrid]
// and [WriteRuleSets] encode to any io.Writer. [ImportGrid] and [ExportGrid]
// are file-based wrappers. Decode failures carry the INVALID_FORMAT code,
// and rule construction failures keep their own codes.
package io
