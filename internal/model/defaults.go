package model

// FillDefaults applies the defaulting rules in place and returns the passive
// checks it dropped for being invalid. Applying it twice has no further effect.
//
// An absent success target is defaulted to RootKey; a present but empty one is
// left as written.
func (d *Dialogue) FillDefaults() []PassiveCheck {
	fallback := FallbackDialogue()
	if d.Speaker == "" {
		d.Speaker = fallback.Speaker
	}
	if d.Intro == "" {
		d.Intro = fallback.Intro
	}

	if len(d.Options) == 0 {
		d.Options = []DialogueOption{DefaultOption()}
	} else {
		for i := range d.Options {
			o := &d.Options[i]
			if o.Description == "" {
				o.Description = DefaultDescription
			}
			if o.SuccessDialogue == nil {
				o.SuccessDialogue = Str(RootKey)
			}
		}
	}

	var dropped []PassiveCheck
	kept := make([]PassiveCheck, 0, len(d.PassiveCheck))
	for _, pc := range d.PassiveCheck {
		if !pc.IsValid() {
			dropped = append(dropped, pc)
			continue
		}
		kept = append(kept, pc)
	}
	d.PassiveCheck = kept
	return dropped
}
