// Copyright 2026 Rxscan Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"github.com/rxscan/medsearch/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalMedicineRecord serializes a MedicineRecord to bytes.
func MarshalMedicineRecord(record *core.MedicineRecord) []byte {
	buf := make([]byte, core.MedicineRecordMUS.Size(*record))
	core.MedicineRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalMedicineRecord deserializes a MedicineRecord from bytes.
func UnmarshalMedicineRecord(data []byte) (*core.MedicineRecord, error) {
	record, _, err := core.MedicineRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalGeneration serializes a Generation to bytes.
func MarshalGeneration(generation *core.Generation) []byte {
	buf := make([]byte, core.GenerationMUS.Size(*generation))
	core.GenerationMUS.Marshal(*generation, buf)
	return buf
}

// UnmarshalGeneration deserializes a Generation from bytes.
func UnmarshalGeneration(data []byte) (*core.Generation, error) {
	generation, _, err := core.GenerationMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &generation, nil
}
