// Package ini reads, edits and writes INI-style configuration files.
//
// The package is split along the life of a file:
//
//   - Source turns a file into logical lines. It strips comments (collected
//     as Comment blocks), joins lines ending in an odd number of backslashes
//     and expands include directives. Includes form an explicit stack of open
//     files; a file is closed as soon as it is exhausted.
//   - Parse feeds those lines to a Handler as section and option events.
//   - Store and Section keep the result as ordered multi-maps, so one option
//     may carry several values and, with MultiSection, one name may denote
//     several sections.
//   - WriteTo and WriteFile regenerate the same grammar.
//
// # File Format
//
//	; comment, attached to the next section or option
//	[server]
//	host = example.com
//	port: 8080
//	path = C:\\Program Files\\App
//	motd = first part \
//	       second part
//	<common.ini>
//	<?local.ini>
//
// A "<file>" line splices another file in place; "<?file>" does the same but
// is silently skipped when the file cannot be opened. Relative include paths
// resolve against the directory of the including file, after the optional
// Options.Substituter has expanded any variables in them.
//
// # Profiles
//
// Section names may form a tree through Options.PathSeparator:
//
//	app := store.AddSection("app")
//	app.AddChild("db")            // section "app/db"
//	db, _ := app.Lookup("db")
//	parent, _ := db.Parent()      // "app"
//	names := app.ChildrenNames()  // ["db"], grandchildren excluded
//
// # Thread Safety
//
// Stores, Sections and Sources are NOT thread-safe. Give each goroutine its
// own Store; Options values can be shared freely because they are copied.
package ini
