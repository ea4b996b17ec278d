/*
Package provider is the file-system provider for sitefix.

	            +-------------+
	            |  Provider   |
	            | (afero.Fs)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|    OS     |           | Memory  |
	|   Files   |           |  Files  |
	+-----------+           +---------+

🎯 Purpose:
- Enumerates candidate files under a root, flat or recursive
- Reads and writes whole documents as UTF-8 text
- Replaces files atomically so a run never leaves half-written content

🔄 Flow:
1. ListFiles checks the root exists and is a directory (ErrNotFound, ErrNotDirectory)
2. Walks the tree, keeping regular files whose suffix matches an extension
3. Drops anything matching an exclusion glob
4. Returns paths sorted so runs are deterministic

⚡ Key Responsibilities:
- Symlinks are followed only when they resolve to a regular file
- Exclusion globs use doublestar syntax and match the root-relative path or the base name
- Writes keep the permissions of the file they replace

🤝 Interfaces:
- FileSystem: what the rest of sitefix depends on
- Factory: named constructors ("os", "memory") looked up with Get

🔍 Example:

	fs := provider.NewOS()
	files, err := fs.ListFiles(ctx, "Website", provider.ListOptions{
		Extensions: []string{".html"},
		Recursive:  true,
		Exclude:    []string{"drafts/**"},
	})
*/
package provider
