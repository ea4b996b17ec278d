/*
Package operation implements the change-gated write loop for sitefix.

	+-------------+
	|   Runner    |
	|   (Jobs)    |
	+------+------+
	       |
	+------+------+
	|   Writer    |
	| (Read/Gate) |
	+------+------+

🎯 Purpose:
- Enumerates a job's documents through the provider
- Runs each document through its rewrite pipeline
- Writes back only when the transformed text differs

🔄 Flow:
1. Runner lists the root (a missing root stops the job before any file is touched)
2. Writer reads, transforms and compares each document
3. Changed documents are written atomically, or previewed in a dry run
4. Every outcome is tracked by the status reporter

⚡ Key Responsibilities:
- Per-file failures stay inside their Outcome and never stop the batch
- Sequential by default, bounded parallelism with Workers > 1
- Cancellation checked before each document

🤝 Interfaces:
- provider.FileSystem: where documents come from and go to
- Transformer: anything that maps text to a rewrite.Result
- status.StatusReporter: where outcomes end up

🔍 Example:

	runner := operation.NewRunner(provider.NewOS(), os.Stdout)
	summary, err := runner.Run(ctx, operation.Job{
		Name:     "footer",
		Root:     "Website",
		List:     provider.ListOptions{Extensions: []string{".html"}},
		Pipeline: pipeline,
	})
*/
package operation
