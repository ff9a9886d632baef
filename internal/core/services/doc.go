// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (extractors, config).
package services
