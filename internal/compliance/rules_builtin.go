package compliance

// builtinRules returns the built-in rule catalog. The catalog is intentionally
// conservative: keywords are multi-word phrases so incidental vocabulary in a
// contract does not count as evidence of a clause.
func builtinRules() []*Rule {
	return []*Rule{
		// GDPR
		{
			ID:          "gdpr-lawful-basis",
			Framework:   FrameworkGDPR,
			Category:    CategoryDataProtection,
			Name:        "Lawful basis for processing",
			Description: "Identify a lawful basis for processing personal data",
			RiskLevel:   RiskCritical,
			Keywords:    []string{"lawful basis", "legal basis", "legitimate interest", "consent"},
			Weight:      1.0,
			IsActive:    true,
		},
		{
			ID:          "gdpr-data-subject-rights",
			Framework:   FrameworkGDPR,
			Category:    CategoryDataProtection,
			Name:        "Data subject rights",
			Description: "Describe how data subjects exercise access, rectification, erasure, and portability rights",
			RiskLevel:   RiskHigh,
			Keywords: []string{
				"right to access", "right to rectification", "right to erasure",
				"right to object", "data portability", "data subject rights",
			},
			Weight:   0.9,
			IsActive: true,
		},
		{
			ID:          "gdpr-data-retention",
			Framework:   FrameworkGDPR,
			Category:    CategoryDataProtection,
			Name:        "Data retention limits",
			Description: "State how long personal data is retained and when it is deleted",
			RiskLevel:   RiskMedium,
			Keywords:    []string{"retention period", "data retention", "retention schedule", "securely deleted"},
			Patterns:    []string{`retain(ed|s)?\s+for`},
			Weight:      0.8,
			IsActive:    true,
		},
		{
			ID:          "gdpr-breach-notification",
			Framework:   FrameworkGDPR,
			Category:    CategoryDataProtection,
			Name:        "Personal data breach notification",
			Description: "Commit to notifying the supervisory authority of a personal data breach within 72 hours",
			RiskLevel:   RiskHigh,
			Keywords:    []string{"personal data breach", "breach notification", "supervisory authority", "72 hours"},
			Weight:      0.8,
			IsActive:    true,
		},
		{
			ID:          "gdpr-international-transfers",
			Framework:   FrameworkGDPR,
			Category:    CategoryDataProtection,
			Name:        "International transfer safeguards",
			Description: "Cover safeguards for transfers of personal data outside the EEA",
			RiskLevel:   RiskMedium,
			Keywords:    []string{"standard contractual clauses", "adequacy decision", "cross-border transfer"},
			Weight:      0.7,
			IsActive:    true,
		},
		{
			ID:          "gdpr-dpo-contact",
			Framework:   FrameworkGDPR,
			Category:    CategoryDataProtection,
			Name:        "Data protection officer contact",
			Description: "Provide contact details for the data protection officer where one is designated",
			RiskLevel:   RiskLow,
			Keywords:    []string{"data protection officer", "dpo contact"},
			Weight:      0.5,
			IsActive:    true,
		},

		// HIPAA
		{
			ID:          "hipaa-phi-safeguards",
			Framework:   FrameworkHIPAA,
			Category:    CategoryHealthcarePrivacy,
			Name:        "PHI safeguards",
			Description: "Require administrative, physical, and technical safeguards for protected health information",
			RiskLevel:   RiskCritical,
			Keywords: []string{
				"protected health information", "administrative safeguards",
				"technical safeguards", "physical safeguards",
			},
			Patterns: []string{`\bphi\b`},
			Weight:   1.0,
			IsActive: true,
		},
		{
			ID:          "hipaa-business-associate",
			Framework:   FrameworkHIPAA,
			Category:    CategoryHealthcarePrivacy,
			Name:        "Business associate obligations",
			Description: "Bind business associates to HIPAA obligations through a business associate agreement",
			RiskLevel:   RiskHigh,
			Keywords:    []string{"business associate agreement", "business associate"},
			Weight:      0.9,
			IsActive:    true,
		},
		{
			ID:          "hipaa-minimum-necessary",
			Framework:   FrameworkHIPAA,
			Category:    CategoryHealthcarePrivacy,
			Name:        "Minimum necessary use",
			Description: "Limit use and disclosure of health information to the minimum necessary",
			RiskLevel:   RiskMedium,
			Keywords:    []string{"minimum necessary"},
			Weight:      0.8,
			IsActive:    true,
		},
		{
			ID:          "hipaa-breach-notification",
			Framework:   FrameworkHIPAA,
			Category:    CategoryHealthcarePrivacy,
			Name:        "Breach notification duties",
			Description: "Commit to notifying affected individuals of breaches of unsecured health information",
			RiskLevel:   RiskHigh,
			Keywords:    []string{"notify affected individuals", "breach notification"},
			Weight:      0.6,
			IsActive:    true,
		},

		// SOX
		{
			ID:          "sox-internal-controls",
			Framework:   FrameworkSOX,
			Category:    CategoryFinancialControls,
			Name:        "Internal controls over financial reporting",
			Description: "Maintain internal controls over financial reporting",
			RiskLevel:   RiskHigh,
			Keywords:    []string{"internal controls", "internal control over financial reporting"},
			Weight:      0.9,
			IsActive:    true,
		},
		{
			ID:          "sox-records-retention",
			Framework:   FrameworkSOX,
			Category:    CategoryFinancialControls,
			Name:        "Audit records retention",
			Description: "Retain audit workpapers and financial records for the statutory period",
			RiskLevel:   RiskMedium,
			Keywords:    []string{"audit trail", "records retention", "workpapers"},
			Weight:      0.8,
			IsActive:    true,
		},
		{
			ID:          "sox-certification",
			Framework:   FrameworkSOX,
			Category:    CategoryFinancialControls,
			Name:        "Management certification",
			Description: "Provide for management certification of financial statements",
			RiskLevel:   RiskMedium,
			Keywords:    []string{"management certification", "certify the accuracy"},
			Weight:      0.6,
			IsActive:    true,
		},

		// PCI-DSS
		{
			ID:          "pci-cardholder-data",
			Framework:   FrameworkPCIDSS,
			Category:    CategoryDataProtection,
			Name:        "Cardholder data protection",
			Description: "Encrypt cardholder data at rest and in transit",
			RiskLevel:   RiskCritical,
			Keywords:    []string{"cardholder data", "primary account number", "encryption at rest"},
			Weight:      0.9,
			IsActive:    true,
		},
		{
			ID:          "pci-access-control",
			Framework:   FrameworkPCIDSS,
			Category:    CategorySecurityControls,
			Name:        "Access control measures",
			Description: "Restrict access to cardholder systems on a need-to-know basis",
			RiskLevel:   RiskMedium,
			Keywords:    []string{"access control", "least privilege", "need-to-know"},
			Weight:      0.7,
			IsActive:    true,
		},

		// CCPA
		{
			ID:          "ccpa-do-not-sell",
			Framework:   FrameworkCCPA,
			Category:    CategoryDataProtection,
			Name:        "Do-not-sell opt-out",
			Description: "Offer consumers an opt-out from the sale of personal information",
			RiskLevel:   RiskHigh,
			Keywords:    []string{"do not sell", "opt-out of the sale", "opt out of the sale"},
			Weight:      0.8,
			IsActive:    true,
		},
		{
			ID:          "ccpa-consumer-rights",
			Framework:   FrameworkCCPA,
			Category:    CategoryDataProtection,
			Name:        "Consumer rights handling",
			Description: "Describe how verified consumer requests to know and delete are handled",
			RiskLevel:   RiskMedium,
			Keywords:    []string{"right to know", "right to delete", "verified consumer request"},
			Weight:      0.8,
			IsActive:    true,
		},
	}
}
