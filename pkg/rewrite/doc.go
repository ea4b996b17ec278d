/*
Package rewrite implements the text rules sitefix applies to each document.

	+-------------+     +-------------+     +-------------+
	|   Rule 1    | --> |   Rule 2    | --> |   Rule N    |
	+-------------+     +-------------+     +-------------+
	        \_______ Pipeline.Transform(text) _______/

🎯 Purpose:
- Turn the text of one document into its rewritten form
- Keep every rule idempotent so re-running a pipeline is a no-op
- Treat a rule that does not match as a no-op, never an error

🔧 Rules:
- DedupeLines: drops repeated marker lines (favicon, manifest, theme-color)
- Substitution: ordered regexp find/replace, most specific pattern first
- Insertion: anchored insert with a verbatim guard and fallback anchors
- BlockReplace: swaps a delimited region, tag-aware by default

📝 Payloads such as the footer block or the favicon snippet are passed in by the
caller. Rules hold no state between Apply calls.

🔍 Example:

	footer, _ := rewrite.NewBlockReplace("footer", `<footer class="page-footer">`, "", newFooter)
	p := rewrite.NewPipeline(rewrite.NewDedupeLines(""), footer)
	res := p.Transform(doc)
	if res.WasModified {
		// write res.Modified
	}
*/
package rewrite
