// Package events provides the client-side persistence layer for Events.
//
// The dirty and tombstone rules are the same as in package subjects: local
// mutations mark the row dirty and advance its clock, Upsert applies remote
// copies clean and only when they are newer. The subject reference is not
// enforced; an event may arrive before its subject.
package events
