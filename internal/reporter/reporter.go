package reporter

// Reporter defines the interface for progress reporting.
type Reporter interface {
	OperationStarted(info OperationInfo)
	MediaInfo(summary MediaSummary)
	StageProgress(update StageProgress)
	FitResult(summary FitSummary)
	CodecSelection(summary CodecSummary)
	EncodingStarted(label string)
	EncodingProgress(progress ProgressSnapshot)
	PartProgress(part PartContext)
	ValidationComplete(summary ValidationSummary)
	OutputWritten(summary OutputSummary)
	Warning(message string)
	Error(err ReporterError)
	OperationComplete(outcome OperationOutcome)
	Verbose(message string)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) OperationStarted(OperationInfo)       {}
func (NullReporter) MediaInfo(MediaSummary)               {}
func (NullReporter) StageProgress(StageProgress)          {}
func (NullReporter) FitResult(FitSummary)                 {}
func (NullReporter) CodecSelection(CodecSummary)          {}
func (NullReporter) EncodingStarted(string)               {}
func (NullReporter) EncodingProgress(ProgressSnapshot)    {}
func (NullReporter) PartProgress(PartContext)             {}
func (NullReporter) ValidationComplete(ValidationSummary) {}
func (NullReporter) OutputWritten(OutputSummary)          {}
func (NullReporter) Warning(string)                       {}
func (NullReporter) Error(ReporterError)                  {}
func (NullReporter) OperationComplete(OperationOutcome)   {}
func (NullReporter) Verbose(string)                       {}
