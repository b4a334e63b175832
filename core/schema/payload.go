package schema

// defaultFileMaxSize is the upload size cap applied when a file field does
// not set one (5 MiB).
const defaultFileMaxSize = 5242880

// BuildPayload translates a collection declaration into the wire payload
// the remote store's collection API expects. It is a pure function: no I/O,
// and identical input always yields identical output.
//
// Omitted option attributes receive kind-specific defaults; access rules
// are copied through unchanged, with a nil rule emitted as null (locked).
func BuildPayload(c Collection) map[string]any {
	fields := make([]map[string]any, 0, len(c.Fields))
	for _, f := range c.Fields {
		fields = append(fields, buildFieldPayload(f))
	}

	indexes := c.Indexes
	if indexes == nil {
		indexes = []string{}
	}

	return map[string]any{
		"name":       c.Name,
		"type":       string(c.Kind),
		"fields":     fields,
		"indexes":    indexes,
		"listRule":   ruleValue(c.Rules.List),
		"viewRule":   ruleValue(c.Rules.View),
		"createRule": ruleValue(c.Rules.Create),
		"updateRule": ruleValue(c.Rules.Update),
		"deleteRule": ruleValue(c.Rules.Delete),
	}
}

// buildFieldPayload emits one field entry with its kind-appropriate
// attributes, filling documented defaults where the declaration omits them.
func buildFieldPayload(f Field) map[string]any {
	entry := map[string]any{
		"name":     f.Name,
		"type":     string(f.Kind),
		"required": f.Required,
	}

	opts := map[string]any{}
	switch f.Kind {
	case FieldText:
		var o TextOptions
		if f.Text != nil {
			o = *f.Text
		}
		opts["min"] = o.Min
		opts["max"] = o.Max
		opts["pattern"] = o.Pattern
	case FieldNumber:
		var o NumberOptions
		if f.Number != nil {
			o = *f.Number
		}
		opts["min"] = numberBound(o.Min)
		opts["max"] = numberBound(o.Max)
		opts["noDecimal"] = o.NoDecimal
	case FieldBool:
		// No extra attributes.
	case FieldSelect:
		var o SelectOptions
		if f.Select != nil {
			o = *f.Select
		}
		opts["values"] = stringList(o.Values)
		opts["maxSelect"] = defaultOne(o.MaxSelect)
	case FieldRelation:
		var o RelationOptions
		if f.Relation != nil {
			o = *f.Relation
		}
		opts["collectionId"] = o.CollectionID
		opts["cascadeDelete"] = o.CascadeDelete
		opts["maxSelect"] = defaultOne(o.MaxSelect)
	case FieldFile:
		var o FileOptions
		if f.File != nil {
			o = *f.File
		}
		opts["maxSelect"] = defaultOne(o.MaxSelect)
		if o.MaxSize <= 0 {
			o.MaxSize = defaultFileMaxSize
		}
		opts["maxSize"] = o.MaxSize
		opts["mimeTypes"] = stringList(o.MimeTypes)
	case FieldEditor:
		var o EditorOptions
		if f.Editor != nil {
			o = *f.Editor
		}
		opts["convertUrls"] = o.ConvertURLs
	default:
		// email, url, date, json and any future kind: shallow-merge the
		// caller-supplied attributes verbatim.
		for k, v := range f.Extra {
			opts[k] = v
		}
	}

	entry["options"] = opts
	return entry
}

// ruleValue converts a rule pointer into its wire value. nil becomes null
// (locked); everything else passes through, including the empty public rule.
func ruleValue(r *string) any {
	if r == nil {
		return nil
	}
	return *r
}

// numberBound keeps nil as null (unbounded) on the wire.
func numberBound(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func defaultOne(v int) int {
	if v <= 0 {
		return 1
	}
	return v
}

func stringList(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
