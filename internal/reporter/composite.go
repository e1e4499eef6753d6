package reporter

// CompositeReporter fans out events to multiple reporters.
type CompositeReporter struct {
	reporters []Reporter
}

// NewCompositeReporter creates a composite reporter.
func NewCompositeReporter(reporters ...Reporter) *CompositeReporter {
	return &CompositeReporter{reporters: reporters}
}

func (c *CompositeReporter) each(fn func(Reporter)) {
	for _, r := range c.reporters {
		fn(r)
	}
}

func (c *CompositeReporter) OperationStarted(info OperationInfo) {
	c.each(func(r Reporter) { r.OperationStarted(info) })
}

func (c *CompositeReporter) MediaInfo(summary MediaSummary) {
	c.each(func(r Reporter) { r.MediaInfo(summary) })
}

func (c *CompositeReporter) StageProgress(update StageProgress) {
	c.each(func(r Reporter) { r.StageProgress(update) })
}

func (c *CompositeReporter) FitResult(summary FitSummary) {
	c.each(func(r Reporter) { r.FitResult(summary) })
}

func (c *CompositeReporter) CodecSelection(summary CodecSummary) {
	c.each(func(r Reporter) { r.CodecSelection(summary) })
}

func (c *CompositeReporter) EncodingStarted(label string) {
	c.each(func(r Reporter) { r.EncodingStarted(label) })
}

func (c *CompositeReporter) EncodingProgress(progress ProgressSnapshot) {
	c.each(func(r Reporter) { r.EncodingProgress(progress) })
}

func (c *CompositeReporter) PartProgress(part PartContext) {
	c.each(func(r Reporter) { r.PartProgress(part) })
}

func (c *CompositeReporter) ValidationComplete(summary ValidationSummary) {
	c.each(func(r Reporter) { r.ValidationComplete(summary) })
}

func (c *CompositeReporter) OutputWritten(summary OutputSummary) {
	c.each(func(r Reporter) { r.OutputWritten(summary) })
}

func (c *CompositeReporter) Warning(message string) {
	c.each(func(r Reporter) { r.Warning(message) })
}

func (c *CompositeReporter) Error(err ReporterError) {
	c.each(func(r Reporter) { r.Error(err) })
}

func (c *CompositeReporter) OperationComplete(outcome OperationOutcome) {
	c.each(func(r Reporter) { r.OperationComplete(outcome) })
}

func (c *CompositeReporter) Verbose(message string) {
	c.each(func(r Reporter) { r.Verbose(message) })
}
