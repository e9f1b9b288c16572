package internal

// ResolveDate runs the evidence chain for one file in precedence
// order (filename, metadata, filesystem) and short-circuits at the
// first successful extraction. The full trail of attempts is returned
// alongside the winner so a terminal failure can be classified.
//
// A metadata decode fault reported by the collaborator is folded into
// zero-confidence metadata evidence here; it never propagates as an
// error.
func ResolveDate(in FileInput) (winner DateEvidence, trail []DateEvidence) {
	trail = make([]DateEvidence, 0, 3)

	ev := ExtractFilenameDate(in.Name)
	trail = append(trail, ev)
	if ev.Found() {
		return ev, trail
	}

	if in.MetadataErr != nil {
		ev = DateEvidence{
			Source:        SourceMetadata,
			FailureReason: "metadata extraction error: " + in.MetadataErr.Error(),
		}
	} else {
		ev = ExtractMetadataDate(in.Metadata, in.ContentType)
	}
	trail = append(trail, ev)
	if ev.Found() {
		return ev, trail
	}

	ev = ExtractFilesystemDate(in.ModMillis)
	trail = append(trail, ev)
	return ev, trail
}
