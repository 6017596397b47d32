// Package pagelens provides a web page extraction and SEO analysis engine.
// It takes raw HTML plus a mode selector, produces normalized structured
// data (article text, product attributes, SEO and readability metrics),
// optionally enriched by an AI-generated summary or rewrite, and tracks
// each unit of work as an asynchronous job with a
// pending -> running -> done|error lifecycle.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, gemini/).
package pagelens
