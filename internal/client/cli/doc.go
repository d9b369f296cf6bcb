// Package cli provides the interactive gophrecords command-line client.
//
// It wires configuration, the local record store, the sync service and an
// interactive REPL. Records are edited offline against the local store; a
// background watcher pings the remote store and shows online/offline in the
// prompt, and an optional cron schedule syncs the current scope.
//
// Commands:
//   - scope <name>                 switch between pets, cars, family, house
//   - subjects, addsubject, editsubject <id>, delsubject <id>
//   - events [subject], addevent [subject], done <id> [cost], delevent <id>
//   - sync, resync, status, token
//
// Record ids may be abbreviated to any unique prefix.
package cli
