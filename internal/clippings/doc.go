// Package clippings parses the plain-text annotation export produced
// by Kindle-style e-readers ("My Clippings.txt") into domain
// annotations, grouped by book in first-seen order.
package clippings
