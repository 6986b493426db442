package schedule

// ResolveInterval merges the three configuration layers for one care kind
// into the interval actually in force. Precedence: the user's per-plant
// override, then the plant type's recommendation, then hardDefault.
//
// A layer only wins if it holds a positive number of days; nil or
// non-positive values fall through to the next layer. The function never
// fails — hardDefault is the floor.
func ResolveInterval(override, recommended *int, hardDefault int) EffectiveInterval {
	if override != nil && *override > 0 {
		return EffectiveInterval{Days: *override, Source: SourceOverride}
	}
	if recommended != nil && *recommended > 0 {
		return EffectiveInterval{Days: *recommended, Source: SourceRecommended}
	}
	return EffectiveInterval{Days: hardDefault, Source: SourceDefault}
}
