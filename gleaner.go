// Package gleaner extracts structured news entities (articles, people,
// organizations, polls, alerts, and others) from arbitrary news-site HTML.
// It degrades gracefully when a site's markup matches no known pattern:
// a structural CSS-selector parse is attempted first, and a language-model
// fallback recovers content when the structural parse fails. Selector sets
// that worked for a domain can be learned and reused on later parses.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, ollama/, sqlite/)
// or after their function when they are pure logic (e.g., adaptive/,
// validate/).
package gleaner
