package book

// Weight tiers for the weighted repertoire.
const (
	MainLine        = 100
	GoodAlternative = 70
	Playable        = 40
	Surprise        = 20
)

// weightedTable is a hand-curated repertoire keyed by the space-joined UCI
// move history from startpos, covering White's 1.e4/1.d4/1.c4/1.Nf3 choices
// and Black's main replies, carried several plies deep into the most common
// lines (Italian, Ruy Lopez, Petrov, Caro-Kann, French, Sicilian Alapin/Open,
// Queen's Gambit Declined, Semi-Slav, Slav, Indian systems, London, English,
// reti/neutral openings).
var weightedTable = map[string][]Candidate{
	"": {{"e2e4", MainLine}},

	"e2e4": {
		{"c7c5", Playable},
		{"e7e5", Playable},
		{"c7c6", GoodAlternative},
		{"e7e6", Playable},
		{"g7g6", Surprise},
	},

	"e2e4 c7c6": {
		{"d2d4", MainLine},
		{"b1c3", GoodAlternative},
		{"g1f3", Playable},
	},
	"e2e4 c7c6 d2d4":             {{"d7d5", MainLine}},
	"e2e4 c7c6 d2d4 d7d5":        {{"b1c3", MainLine}, {"e4e5", GoodAlternative}},
	"e2e4 c7c6 d2d4 d7d5 e4e5":   {{"c8f5", MainLine}, {"c8g4", GoodAlternative}},
	"e2e4 c7c6 d2d4 d7d5 e4e5 c8f5":       {{"f1e2", MainLine}, {"b1d2", GoodAlternative}, {"g1f3", Playable}},
	"e2e4 c7c6 d2d4 d7d5 e4e5 c8f5 f1e2":  {{"e7e6", MainLine}, {"g8f6", GoodAlternative}, {"h7h5", Playable}},
	"e2e4 c7c6 d2d4 d7d5 b1c3":            {{"d5e4", MainLine}},
	"e2e4 c7c6 d2d4 d7d5 b1c3 d5e4":       {{"c3e4", MainLine}},
	"e2e4 c7c6 d2d4 d7d5 b1c3 d5e4 c3e4":  {{"c8f5", MainLine}, {"g8f6", GoodAlternative}},
	"e2e4 c7c6 d2d4 d7d5 e4d5":            {{"c6d5", MainLine}},
	"e2e4 c7c6 d2d4 d7d5 e4d5 c6d5":       {{"c2c4", MainLine}, {"b1c3", GoodAlternative}},

	"e2e4 c7c5": {
		{"g1f3", MainLine},
		{"c2c3", GoodAlternative},
		{"b1c3", Playable},
	},
	"e2e4 c7c5 c2c3":             {{"d7d5", MainLine}, {"g8f6", GoodAlternative}, {"b8c6", Playable}},
	"e2e4 c7c5 c2c3 d7d5":        {{"e4d5", MainLine}, {"e4e5", Playable}},
	"e2e4 c7c5 c2c3 d7d5 e4d5":   {{"d8d5", MainLine}},
	"e2e4 c7c5 c2c3 d7d5 e4d5 d8d5": {{"d2d4", MainLine}, {"g1f3", GoodAlternative}},
	"e2e4 c7c5 c2c3 g8f6":        {{"e4e5", MainLine}},
	"e2e4 c7c5 c2c3 g8f6 e4e5":   {{"f6d5", MainLine}},
	"e2e4 c7c5 g1f3":             {{"d7d6", MainLine}, {"b8c6", GoodAlternative}, {"e7e6", Playable}},
	"e2e4 c7c5 g1f3 d7d6":        {{"d2d4", MainLine}, {"f1b5", Playable}},
	"e2e4 c7c5 g1f3 b8c6":        {{"d2d4", MainLine}, {"f1b5", GoodAlternative}},

	"e2e4 e7e6": {
		{"d2d4", MainLine},
		{"g1f3", Playable},
	},
	"e2e4 e7e6 d2d4":             {{"d7d5", MainLine}},
	"e2e4 e7e6 d2d4 d7d5":        {{"b1c3", MainLine}, {"e4e5", GoodAlternative}, {"e4d5", Playable}},
	"e2e4 e7e6 d2d4 d7d5 e4e5":   {{"c7c5", MainLine}},
	"e2e4 e7e6 d2d4 d7d5 e4e5 c7c5":       {{"c2c3", MainLine}, {"g1f3", GoodAlternative}},
	"e2e4 e7e6 d2d4 d7d5 e4e5 c7c5 c2c3":  {{"b8c6", MainLine}, {"d8b6", GoodAlternative}},
	"e2e4 e7e6 d2d4 d7d5 b1c3":            {{"g8f6", MainLine}, {"f8b4", GoodAlternative}, {"d5e4", Playable}},

	"e2e4 e7e5": {{"g1f3", MainLine}},
	"e2e4 e7e5 g1f3":             {{"b8c6", MainLine}, {"g8f6", Playable}},
	"e2e4 e7e5 g1f3 g8f6":        {{"f3e5", MainLine}, {"d2d4", Playable}},
	"e2e4 e7e5 g1f3 b8c6": {
		{"f1c4", MainLine},
		{"f1b5", GoodAlternative},
	},
	"e2e4 e7e5 g1f3 b8c6 f1c4": {
		{"g8f6", MainLine},
		{"f8c5", GoodAlternative},
	},
	"e2e4 e7e5 g1f3 b8c6 f1c4 f8c5": {
		{"c2c3", MainLine},
		{"d2d3", GoodAlternative},
		{"b2b4", Surprise},
	},
	"e2e4 e7e5 g1f3 b8c6 f1c4 f8c5 c2c3":    {{"g8f6", MainLine}, {"d8e7", GoodAlternative}},
	"e2e4 e7e5 g1f3 b8c6 f1c4 f8c5 c2c3 g8f6": {{"d2d4", MainLine}, {"d2d3", Playable}},
	"e2e4 e7e5 g1f3 b8c6 f1c4 f8c5 d2d3":    {{"g8f6", MainLine}, {"d7d6", GoodAlternative}},
	"e2e4 e7e5 g1f3 b8c6 f1c4 g8f6": {
		{"d2d3", MainLine},
		{"d2d4", GoodAlternative},
		{"e1g1", Playable},
	},
	"e2e4 e7e5 g1f3 b8c6 f1c4 g8f6 d2d3":    {{"f8c5", MainLine}, {"f8e7", GoodAlternative}, {"h7h6", Playable}},
	"e2e4 e7e5 g1f3 b8c6 f1c4 g8f6 d2d4":    {{"e5d4", MainLine}},
	"e2e4 e7e5 g1f3 b8c6 f1c4 g8f6 d2d4 e5d4": {{"e1g1", MainLine}, {"f3d4", GoodAlternative}},
	"e2e4 e7e5 g1f3 b8c6 f1b5": {
		{"a7a6", MainLine},
		{"g8f6", GoodAlternative},
	},
	"e2e4 e7e5 g1f3 b8c6 f1b5 a7a6": {{"b5a4", MainLine}, {"b5c6", Playable}},

	"d2d4": {
		{"d7d5", MainLine},
		{"g8f6", GoodAlternative},
	},
	"d2d4 d7d5": {
		{"c2c4", MainLine},
		{"g1f3", GoodAlternative},
		{"c1f4", Playable},
	},
	"d2d4 d7d5 c2c4": {
		{"e7e6", MainLine},
		{"c7c6", GoodAlternative},
		{"g8f6", Playable},
	},
	"d2d4 d7d5 c2c4 e7e6":                      {{"b1c3", MainLine}, {"g1f3", GoodAlternative}},
	"d2d4 d7d5 c2c4 e7e6 b1c3":                 {{"g8f6", MainLine}, {"f8e7", GoodAlternative}},
	"d2d4 d7d5 c2c4 e7e6 b1c3 g8f6":            {{"g1f3", MainLine}, {"c1g5", GoodAlternative}},
	"d2d4 d7d5 c2c4 e7e6 b1c3 g8f6 g1f3":       {{"c7c6", MainLine}, {"f8e7", GoodAlternative}},
	"d2d4 d7d5 c2c4 e7e6 b1c3 g8f6 g1f3 c7c6":  {{"e2e3", MainLine}, {"c1g5", GoodAlternative}, {"c4d5", Playable}},
	"d2d4 d7d5 c2c4 e7e6 b1c3 g8f6 g1f3 c7c6 e2e3": {{"b8d7", MainLine}, {"a7a6", GoodAlternative}},
	"d2d4 d7d5 c2c4 e7e6 b1c3 g8f6 g1f3 f8e7": {{"c1f4", MainLine}, {"c1g5", GoodAlternative}},
	"d2d4 d7d5 c2c4 c7c6":                     {{"b1c3", MainLine}, {"g1f3", GoodAlternative}},
	"d2d4 d7d5 c2c4 c7c6 b1c3":                {{"g8f6", MainLine}, {"d5c4", GoodAlternative}},
	"d2d4 d7d5 c2c4 c7c6 b1c3 g8f6":           {{"g1f3", MainLine}, {"e2e3", GoodAlternative}},
	"d2d4 d7d5 g1f3":                          {{"g8f6", MainLine}, {"c7c6", GoodAlternative}},
	"d2d4 d7d5 g1f3 g8f6":                     {{"c1f4", MainLine}, {"c2c4", GoodAlternative}},
	"d2d4 d7d5 g1f3 g8f6 c1f4":                {{"c7c5", MainLine}, {"e7e6", GoodAlternative}, {"c8f5", Playable}},

	"d2d4 g8f6": {
		{"c2c4", MainLine},
		{"g1f3", GoodAlternative},
		{"c1f4", Playable},
	},
	"d2d4 g8f6 c2c4": {
		{"e7e6", MainLine},
		{"g7g6", GoodAlternative},
		{"e7e5", Playable},
	},
	"d2d4 g8f6 c2c4 e7e6":          {{"g1f3", MainLine}, {"b1c3", GoodAlternative}},
	"d2d4 g8f6 c2c4 e7e6 g1f3":     {{"d7d5", MainLine}, {"f8b4", GoodAlternative}},
	"d2d4 g8f6 c2c4 e7e6 g1f3 d7d5": {{"b1c3", MainLine}, {"c1g5", GoodAlternative}},
	"d2d4 g8f6 c2c4 e7e6 b1c3":     {{"f8b4", MainLine}, {"d7d5", GoodAlternative}},
	"d2d4 g8f6 c1f4":               {{"d7d5", MainLine}, {"e7e6", GoodAlternative}, {"c7c5", Playable}},
	"d2d4 g8f6 g1f3":               {{"d7d5", MainLine}, {"e7e6", GoodAlternative}, {"g7g6", Playable}},

	"c2c4": {
		{"e7e5", MainLine},
		{"g8f6", GoodAlternative},
		{"c7c5", Playable},
	},
	"c2c4 e7e5":            {{"g1f3", MainLine}, {"b1c3", GoodAlternative}},
	"c2c4 e7e5 g1f3":       {{"b8c6", MainLine}, {"g8f6", GoodAlternative}},
	"c2c4 e7e5 b1c3":       {{"g8f6", MainLine}, {"b8c6", GoodAlternative}},
	"c2c4 e7e6":            {{"d2d4", MainLine}, {"g1f3", GoodAlternative}},
	"c2c4 e7e6 d2d4":       {{"d7d5", MainLine}},
	"c2c4 e7e6 d2d4 d7d5":  {{"b1c3", MainLine}, {"g1f3", GoodAlternative}},

	"g1f3": {
		{"d7d5", MainLine},
		{"g8f6", GoodAlternative},
		{"c7c5", Playable},
	},
	"g1f3 d7d5":           {{"d2d4", MainLine}, {"c2c4", GoodAlternative}},
	"g1f3 g8f6":           {{"d2d4", MainLine}, {"c2c4", GoodAlternative}},
	"g1f3 d7d5 d2d4":      {{"g8f6", MainLine}, {"e7e6", GoodAlternative}},
	"g1f3 d7d5 d2d4 g8f6": {{"c2c4", MainLine}, {"e2e3", GoodAlternative}},
}

// deterministicTable is the single-line repertoire: White plays the Italian
// via 1.e4, Black meets 1.e4 with 1...e5 into the same Italian lines and 1.d4
// with the Semi-Slav, every position carrying exactly one candidate.
var deterministicTable = map[string][]Candidate{
	"": {{"e2e4", MainLine}},

	"e2e4":       {{"e7e5", MainLine}},
	"e2e4 c7c5":  {{"g1f3", MainLine}},
	"e2e4 c7c6":  {{"d2d4", MainLine}},
	"e2e4 e7e6":  {{"d2d4", MainLine}},
	"e2e4 d7d5":  {{"e4d5", MainLine}},
	"e2e4 g8f6":  {{"e4e5", MainLine}},
	"e2e4 g7g6":  {{"d2d4", MainLine}},

	"e2e4 e7e5":             {{"g1f3", MainLine}},
	"e2e4 e7e5 g1f3":        {{"b8c6", MainLine}},
	"e2e4 e7e5 g1f3 g8f6":   {{"f3e5", MainLine}},
	"e2e4 e7e5 g1f3 b8c6":   {{"f1c4", MainLine}},

	"e2e4 e7e5 g1f3 b8c6 f1c4":              {{"f8c5", MainLine}},
	"e2e4 e7e5 g1f3 b8c6 f1c4 f8c5":         {{"c2c3", MainLine}},
	"e2e4 e7e5 g1f3 b8c6 f1c4 f8c5 c2c3":    {{"g8f6", MainLine}},
	"e2e4 e7e5 g1f3 b8c6 f1c4 f8c5 c2c3 g8f6": {{"d2d4", MainLine}},
	"e2e4 e7e5 g1f3 b8c6 f1c4 f8c5 c2c3 g8f6 d2d4": {{"e5d4", MainLine}},
	"e2e4 e7e5 g1f3 b8c6 f1c4 f8c5 c2c3 g8f6 d2d4 e5d4": {{"c3d4", MainLine}},
	"e2e4 e7e5 g1f3 b8c6 f1c4 f8c5 c2c3 g8f6 d2d4 e5d4 c3d4": {{"c5b4", MainLine}},
	"e2e4 e7e5 g1f3 b8c6 f1c4 f8c5 c2c3 g8f6 d2d4 e5d4 c3d4 c5b4": {{"b1c3", MainLine}},
	"e2e4 e7e5 g1f3 b8c6 f1c4 f8c5 c2c3 g8f6 d2d4 e5d4 c3d4 c5b4 b1c3": {{"f6e4", MainLine}},
	"e2e4 e7e5 g1f3 b8c6 f1c4 f8c5 c2c3 g8f6 d2d4 e5d4 c3d4 c5b4 b1c3 f6e4": {{"e1g1", MainLine}},
	"e2e4 e7e5 g1f3 b8c6 f1c4 f8c5 c2c3 g8f6 d2d4 e5d4 c3d4 c5b4 b1c3 f6e4 e1g1": {{"b4c3", MainLine}},
	"e2e4 e7e5 g1f3 b8c6 f1c4 f8c5 c2c3 g8f6 d2d4 e5d4 c3d4 c5b4 b1c3 f6e4 e1g1 b4c3": {{"b2c3", MainLine}},

	"e2e4 e7e5 g1f3 b8c6 f1c4 g8f6":             {{"d2d3", MainLine}},
	"e2e4 e7e5 g1f3 b8c6 f1c4 g8f6 d2d3":        {{"f8c5", MainLine}},
	"e2e4 e7e5 g1f3 b8c6 f1c4 g8f6 d2d3 f8c5":   {{"c2c3", MainLine}},

	"d2d4":            {{"d7d5", MainLine}},
	"d2d4 d7d5":        {{"c2c4", MainLine}},
	"d2d4 d7d5 c2c4":   {{"e7e6", MainLine}},
	"d2d4 d7d5 c2c4 e7e6":                {{"b1c3", MainLine}},
	"d2d4 d7d5 c2c4 e7e6 b1c3":           {{"g8f6", MainLine}},
	"d2d4 d7d5 c2c4 e7e6 b1c3 g8f6":      {{"g1f3", MainLine}},
	"d2d4 d7d5 c2c4 e7e6 b1c3 g8f6 g1f3": {{"c7c6", MainLine}},
}
