// Package firmware is the application's single control path.
//
// Main is the entry function the platform calls once after static storage is
// initialized. It binds a Loop to the process-wide counter cells and runs it
// forever. Each step advances a local counter and the X cell with the
// configured arithmetic mode, then copies X into Y, touching the cells only
// through the cell package's accessors.
//
// Run never returns, so tests and the board simulation drive Step instead.
package firmware
