/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package showcase is a catalog of events, project submissions and prize awards
backed by a pluggable storage layer.

Entities live in a single-table layout: each record carries a partition key,
a sort key and denormalized secondary-index keys derived from declarative
index maps ("EVENT#{id}" style templates registered per type). The same
schema drives both backends, a networked DynamoDB store and a synchronous
in-process store persisted to JSON files, so code written against one runs
unchanged against the other.

Basic usage:

	cfg, err := showcase.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	catalog, err := showcase.New(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	res := catalog.Projects.GetByEvent(ctx, eventID)
	if !res.Success {
		log.Println(res.Error)
	}

Every service operation returns a Result envelope instead of a bare error;
Result.Err carries the typed error for callers that branch on the error kind
(not found, invalid input, storage unavailable).

Records are never physically deleted: Hide flips a per-record isHidden flag,
listings exclude hidden records and id lookups keep returning them.

The query package layers in-memory search, faceting and prize-status
derivation over slices the services return.
*/
package showcase
