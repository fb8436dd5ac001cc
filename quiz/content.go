package quiz

// Answer is one choice for a question.
type Answer struct {
	Text    string
	Correct bool
}

// Topic is one quiz step: a titled question with its answers and the
// explanation revealed after answering.
type Topic struct {
	Title       string
	Question    string
	Answers     []Answer
	Explanation string
}

// CorrectIndex returns the index of the first correct answer, or -1.
func (t Topic) CorrectIndex() int {
	for i, a := range t.Answers {
		if a.Correct {
			return i
		}
	}
	return -1
}

// DefaultTopics returns the built-in topics in quiz order.
func DefaultTopics() []Topic {
	return []Topic{
		{
			Title:    "What Is ADH1?",
			Question: "What is autosomal dominant hypocalcemia type 1 (ADH1)?",
			Answers: []Answer{
				{"A rare genetic condition caused by gain-of-function variants in the calcium-sensing receptor gene (CASR).", true},
				{"A condition caused by low calcium intake", false},
				{"An autoimmune form of hypoparathyroidism", false},
			},
			Explanation: "In ADH1, over-sensitive calcium-sensing receptor (CaSR) causes dysregulation of calcium homeostasis.",
		},
		{
			Title:    "Mechanism of Disease",
			Question: "Which statement describes how the mechanism of disease in ADH1 is distinct from other forms of hypoparathyroidism?",
			Answers: []Answer{
				{"ADH1 is solely a kidney-related condition.", false},
				{"ADH1 is caused by parathyroid gland injury.", false},
				{"In ADH1, the body misreads calcium levels due to malfunction of the CaSR protein.", true},
			},
			Explanation: "In ADH1, the calcium sensing receptor is too sensitive, \"tricking\" the body into believing low levels of calcium in the blood are normal, or normal levels are too high. As a result, the parathyroid glands don't produce enough parathyroid hormone, and the kidneys excrete too much calcium into the urine.",
		},
		{
			Title:    "Clinical Presentation",
			Question: "What are the most common physical symptoms of ADH1?",
			Answers: []Answer{
				{"Numbness, fatigue, tetany", true},
				{"Restless legs and anxiety", false},
				{"Paresthesia and insomnia", false},
			},
			Explanation: "A common sign of ADH1 is low serum calcium, resulting in muscle cramps and spasms (tetany), and in severe cases seizures, laryngospasms, and arrhythmias.",
		},
		{
			Title:    "Average Time to Diagnosis",
			Question: "True or False: ADH1 is typically diagnosed at birth.",
			Answers: []Answer{
				{"True", false},
				{"False", true},
			},
			Explanation: "There is a 20-plus-year gap between median age of hypocalcemia diagnosis (4 years) and genetic confirmation of ADH1 (25 years).",
		},
		{
			Title:    "Confirming Diagnosis",
			Question: "How is a diagnosis of ADH1 definitively confirmed?",
			Answers: []Answer{
				{"Kidney ultrasound showing nephrocalcinosis", false},
				{"Parathyroid hormone (PTH) test and 24-hour urine test", false},
				{"Genetic testing", true},
			},
			Explanation: "Genetic testing of the calcium-sensing receptor gene (CASR) is the only way to confirm a diagnosis of ADH1.",
		},
		{
			Title:    "Limitations of Conventional Therapy",
			Question: "True or False: Conventional therapy for hypoparathyroidism (calcium supplements and activated Vitamin D) also effectively treats ADH1.",
			Answers: []Answer{
				{"True", false},
				{"False", true},
			},
			Explanation: "Conventional therapy does not address the continued dysfunction in the kidneys. Without addressing the underlying issue, conventional therapy may exacerbate hypercalciuria and lead to long-term renal complications, such as kidney stones, kidney calcification, and kidney failure. Serum calcium may not be controlled either.",
		},
	}
}

// References returns the citations listed on the references panel.
func References() []string {
	return []string{
		"Carmichael J, et al. Autosomal Dominant Hypocalcemia: A Systematic Review. J Bone Miner Res. 2020.",
		"Hannan FM, et al. Calcium-sensing receptor (CaSR) mutations and disorders of calcium homeostasis. Best Pract Res Clin Endocrinol Metab. 2013.",
		"Thakker RV. Diseases associated with the extracellular calcium-sensing receptor. Cell Calcium. 2004.",
		"Pallais JC, et al. Autosomal Dominant Hypocalcemia. In: GeneReviews. University of Washington, Seattle. 2004.",
		"Bilezikian JP, et al. Hypoparathyroidism in the adult: epidemiology, diagnosis, pathophysiology, target-organ involvement, treatment, and challenges for future research. J Bone Miner Res. 2011.",
		"Shoback DM, et al. Calcimimetic agents in autosomal dominant hypocalcemia. N Engl J Med. 2004.",
		"Roszko KL, et al. Autosomal Dominant Hypocalcemia Type 1: A Systematic Review. J Bone Miner Res. 2022.",
	}
}
