// Package services implements the core use cases: indexing uploaded
// documents, retrieving relevant passages, and orchestrating grounded,
// streamed answers.
package services
