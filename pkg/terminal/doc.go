// Package terminal fills a button form from a terminal and posts it to the
// button's action route, the way the browser form would.
//
// Collect prompts once per declared field through a PromptDriver, checks
// every answer with the field's own cleaning rules, and returns the values
// with the submission marker set. Submit sends them as an urlencoded POST.
package terminal
