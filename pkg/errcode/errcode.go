package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Input errors
	InputMissingColumnError
	InputMalformedRowError
	InputFormatError
	InputEmptyCorpusError

	// Data errors
	DataRatingRangeError
	DataEmptyTextError
	DataDuplicateReviewError
	DataUnknownStoreError
	DataDuplicateStoreError
	DataZoneError

	// Analysis errors
	QualityInsufficientDataError
	TagZeroCoverageWarning
	AggregateMissingStoreError
	LexiconLoadError

	// Export errors
	ExportStageError
	ExportCommitError
	ArtifactLoadError
	ExportOutputDirError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableCheckError
	DBMigrateError
	DBWriteError
	ArchiveCommitError

	// Run errors
	RunCancelledError

	// Query errors
	QueryUnknownIntentError

	// Serve errors
	ServeListenError
)
