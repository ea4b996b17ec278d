/*
Package status tracks per-document outcomes and reports run results for sitefix.

	            +-------------+
	            |  Reporter   |
	            | (Outcomes)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|  Console  |           | Summary |
	|   Lines   |           | (pterm) |
	+-----------+           +---------+

🎯 Purpose:
- Defines the outcome of processing one document (changed, unchanged, failed)
- Aggregates outcomes into a Summary with counts and failures
- Prints one aligned line per document plus a closing table

🔄 Flow:
1. StartOperation receives the sorted path list for a job
2. Track is called once per document, from any goroutine
3. Lines are released in path order as soon as every earlier path has reported
4. Summary folds all outcomes into counts, PrintSummary renders them

⚡ Key Responsibilities:
- Deterministic output regardless of worker count
- Failures listed by path and reason
- Structured zerolog events for every outcome

🤝 Interfaces:
- StatusReporter: outcome tracking and progress
- FileFormatter: customizable message text

📝 Notes:
Outcomes are keyed by path, so tracking the same path twice keeps the last value.
A reporter with no StartOperation call prints lines in arrival order.

🔍 Example:

	r := status.NewReporter(os.Stdout)
	r.StartOperation(ctx, "footer", paths)
	r.Track(ctx, status.Changed("index.html", 1, []string{"footer"}))
	status.PrintSummary(os.Stdout, r.Summary())
*/
package status
