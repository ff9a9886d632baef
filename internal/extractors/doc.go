// Package extractors contains the TextExtractor implementations, one
// per supported book container format. Each extractor turns a file path
// into ordered plain-text blocks; the locator dispatches on extension.
package extractors
