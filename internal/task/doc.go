// Package task stores, loads, and validates the task collection.
//
// The task file (TaskTracker.json by default) is a JSON array of task records:
//
//	[
//	  {
//	    "Id": 1,
//	    "Description": "Write the release notes",
//	    "Status": "ToDo",
//	    "CreatedAt": "2026-10-17T09:00:00Z",
//	    "UpdatedAt": null
//	  }
//	]
//
// # Status Values
//
//   - "ToDo": task has not been started (CLI token "to-do")
//   - "InProgress": task is being worked on (CLI token "in-progress")
//   - "Done": task is complete (CLI token "done")
//
// Files written by older tools that encode the status as 0, 1 or 2 are
// decoded as well; the store always writes the string form back.
//
// # Persistence
//
// Every Store operation reads the whole file, mutates the collection in
// memory and writes the whole collection back. Writes go through a temporary
// file in the same directory that is renamed over the target, so readers never
// observe a half-written file.
//
// A file that cannot be decoded is treated as an empty collection. The next
// mutating operation overwrites it.
//
// # Concurrent Access
//
// There is no locking between processes. Two invocations running at the same
// time against the same file can race: the last one to write wins and the
// other's change is lost. The tracker is meant to be driven by one user from
// one shell at a time.
package task
