// Package ruleset loads import rule sets from YAML documents.
//
// A RuleSet is a ready-made rowvalidator import spec: it provides fixed rules,
// custom messages and custom attributes. WithFailureHandler attaches a skip
// hook, such as a failurestore.Recorder.
//
//	name: customers
//	columns:
//	  email:
//	    rules: [required, email, distinct]
//	    attribute: E-mail address
//	    messages:
//	      required: Every customer needs an e-mail.
//	  age:
//	    rules: "nullable|integer|min:0"
//	messages:
//	  distinct: ":attribute must be unique in the file."
//
// Usage:
//
//	rs, err := ruleset.Load("rules/customers.yaml")
//	if err != nil {
//	    return err
//	}
//	outcome, err := rv.Validate(ctx, rows, rs)
package ruleset
