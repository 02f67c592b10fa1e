// Package pkg provides the core libraries for snipbook image-to-PDF conversion.
//
// # Overview
//
// Snipbook turns stacks of scanned images into a single PDF with uniform
// pages. The pkg directory is organized along the three pipeline stages
// plus shared infrastructure:
//
//  1. [meld] - Pixel-wise min/max reduction of repeated scans
//  2. [roi]/[autocrop] - Region extraction and content-border cropping
//  3. [pagelayout]/[compose]/[pdfout] - Page planning, composition, PDF output
//  4. [raster]/[cache]/[errors]/[buildinfo] - Shared infrastructure
//
// # Architecture
//
// The typical data flow through snipbook:
//
//	Scanned images
//	         ↓
//	    [meld] package (reduce repeated scans of one sheet)
//	         ↓
//	    [roi] + [autocrop] packages (cut snippets, trim borders)
//	         ↓
//	    [pagelayout] + [compose] packages (plan pages, place images)
//	         ↓
//	    [pdfout] package (single PDF, one image per page)
//
// All packages operate on stdlib image.Image values decoded through the
// [raster] package, which registers the supported codecs (PNG, JPEG, GIF,
// BMP, TIFF, WebP) and owns output encoding.
package pkg
