// Package apod extracts the day's full-resolution image URL and picture
// metadata from the Astronomy Picture of the Day page markup.
//
// The page layout has been stable for decades: a thumbnail <img> wrapped
// in an <a> whose href points into the image/ tree at the full-size file,
// a <b> heading with the title, and a <title> tag carrying the date. The
// parser walks the DOM and takes the first qualifying anchor in document
// order.
package apod
