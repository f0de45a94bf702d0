// Package models defines the core domain models for chancery.
//
// # Records
//
// Every persistent record lives in a worksheet of the record store, one
// worksheet per entity:
//   - User: an officer account with a role (users)
//   - Document: a submitted document awaiting approval (documents)
//   - FinanceEntry: an income or expense line of the ledger (finance)
//   - ScheduleEvent: a calendar entry (schedule)
//   - Task: a task board card (tasks)
//
// # Identity
//
// Every record carries an ID (UUID format) stored in the first column of its
// worksheet. Updates are addressed by ID; the physical row number is only
// computed inside the workflow engine, right before a write.
//
// # Status values
//
// Documents and finance entries move pending -> approved. Tasks move
// waiting -> in_progress -> done. All three chains are terminal.
package models
